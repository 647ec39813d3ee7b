package services

import (
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutService interface {
	Checkout(userID uint) (*models.Order, error)
}

type checkoutService struct {
	db       *gorm.DB
	cartRepo repository.CartRepository
}

func NewCheckoutService(db *gorm.DB, cartRepo repository.CartRepository) CheckoutService {
	return &checkoutService{db: db, cartRepo: cartRepo}
}

// Checkout converts the user's cart into an order. Order, order items and
// the cart clear all commit in one transaction: a failure anywhere leaves
// the cart untouched and creates no order rows.
func (s *checkoutService) Checkout(userID uint) (*models.Order, error) {
	cart, err := s.cartRepo.GetOrCreateForUser(userID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Preload("Item").Where("cart_id = ?", cart.ID).Order("id").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// Price snapshot happens here, at checkout time. Each order item
		// copies the item's current price; the cart never stored one.
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total = total.Add(line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Price:    line.Item.Price,
			})
		}

		order = &models.Order{
			UserID:      userID,
			Status:      string(models.OrderPending),
			TotalAmount: total,
			Items:       orderItems,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
