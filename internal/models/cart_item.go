package models

import "github.com/shopspring/decimal"

// CartItem holds no price of its own; line totals are always computed
// against the item's current price.
type CartItem struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	CartID   uint `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_item"`
	ItemID   uint `json:"item_id" gorm:"not null;uniqueIndex:idx_cart_item"`
	Item     Item `json:"item" gorm:"foreignKey:ItemID"`
	Quantity int  `json:"quantity" gorm:"not null;default:1;check:quantity > 0"`
}

func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.Item.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
