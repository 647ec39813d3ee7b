package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepository interface {
	AddOne(cartID, itemID uint) error
	SetQuantity(cartID, itemID uint, quantity int) error
	Delete(cartID, itemID uint) (bool, error)
	GetByCartID(cartID uint) ([]models.CartItem, error)
	TotalQuantity(cartID uint) (int, error)
	DeleteByCartID(cartID uint) error
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &cartItemRepository{db: db}
}

// AddOne inserts a line with quantity 1, or atomically increments the
// existing line for the same (cart, item) pair. The unique index on the
// pair makes concurrent adds converge on a single row.
func (r *cartItemRepository) AddOne(cartID, itemID uint) error {
	line := models.CartItem{CartID: cartID, ItemID: itemID, Quantity: 1}
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("cart_items.quantity + 1")}),
	}).Create(&line).Error
}

func (r *cartItemRepository) SetQuantity(cartID, itemID uint, quantity int) error {
	line := models.CartItem{CartID: cartID, ItemID: itemID, Quantity: quantity}
	return r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": quantity}),
	}).Create(&line).Error
}

func (r *cartItemRepository) Delete(cartID, itemID uint) (bool, error) {
	result := r.db.Where("cart_id = ? AND item_id = ?", cartID, itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cartItemRepository) GetByCartID(cartID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.db.Preload("Item").Where("cart_id = ?", cartID).Order("id").Find(&lines).Error
	return lines, err
}

func (r *cartItemRepository) TotalQuantity(cartID uint) (int, error) {
	var total *int
	err := r.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).
		Select("SUM(quantity)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *cartItemRepository) DeleteByCartID(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
