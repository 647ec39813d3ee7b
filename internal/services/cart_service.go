package services

import (
	"errors"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartOwner is the explicit owner key for cart resolution: the user id for
// authenticated callers, the session key for anonymous ones. Exactly one
// side is set.
type CartOwner struct {
	UserID     uint
	SessionKey string
}

func (o CartOwner) Authenticated() bool {
	return o.UserID != 0
}

type CartLine struct {
	Item      models.Item     `json:"item"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	CartID        uint            `json:"cart_id"`
	Lines         []CartLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"total_quantity"`
}

type CartService interface {
	Resolve(owner CartOwner) (*models.Cart, error)
	AddItem(owner CartOwner, itemID uint) error
	UpdateQuantity(owner CartOwner, itemID uint, quantity int) error
	RemoveItem(owner CartOwner, itemID uint) error
	View(owner CartOwner) (*CartView, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	cartItemRepo repository.CartItemRepository
	itemRepo     repository.ItemRepository
}

func NewCartService(cartRepo repository.CartRepository, cartItemRepo repository.CartItemRepository, itemRepo repository.ItemRepository) CartService {
	return &cartService{cartRepo: cartRepo, cartItemRepo: cartItemRepo, itemRepo: itemRepo}
}

// Resolve returns the single cart for the owner key, creating it on first
// touch. It never fails for a well-formed owner.
func (s *cartService) Resolve(owner CartOwner) (*models.Cart, error) {
	if owner.Authenticated() {
		return s.cartRepo.GetOrCreateForUser(owner.UserID)
	}
	return s.cartRepo.GetOrCreateForSession(owner.SessionKey)
}

// AddItem puts one unit of the item into the cart. Repeated adds increment
// the existing line rather than creating a second row.
func (s *cartService) AddItem(owner CartOwner, itemID uint) error {
	if _, err := s.lookupItem(itemID); err != nil {
		return err
	}
	cart, err := s.Resolve(owner)
	if err != nil {
		return err
	}
	return s.cartItemRepo.AddOne(cart.ID, itemID)
}

// UpdateQuantity sets the line to the requested quantity. A non-positive
// quantity removes the line instead of failing.
func (s *cartService) UpdateQuantity(owner CartOwner, itemID uint, quantity int) error {
	if _, err := s.lookupItem(itemID); err != nil {
		return err
	}
	cart, err := s.Resolve(owner)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		_, err := s.cartItemRepo.Delete(cart.ID, itemID)
		return err
	}
	return s.cartItemRepo.SetQuantity(cart.ID, itemID, quantity)
}

func (s *cartService) RemoveItem(owner CartOwner, itemID uint) error {
	cart, err := s.Resolve(owner)
	if err != nil {
		return err
	}
	deleted, err := s.cartItemRepo.Delete(cart.ID, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// View computes line totals against current item prices; nothing here is
// snapshotted.
func (s *cartService) View(owner CartOwner) (*CartView, error) {
	cart, err := s.Resolve(owner)
	if err != nil {
		return nil, err
	}
	lines, err := s.cartItemRepo.GetByCartID(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{CartID: cart.ID, Lines: make([]CartLine, 0, len(lines)), Total: decimal.Zero}
	for i := range lines {
		line := &lines[i]
		lineTotal := line.LineTotal()
		view.Lines = append(view.Lines, CartLine{
			Item:      line.Item,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
		view.TotalQuantity += line.Quantity
	}
	return view, nil
}

func (s *cartService) lookupItem(itemID uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}
