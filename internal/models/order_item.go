package models

import "github.com/shopspring/decimal"

// OrderItem captures the item's unit price at checkout time. Later catalog
// price changes never touch an existing order.
type OrderItem struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	OrderID  uint            `json:"order_id" gorm:"not null;index"`
	ItemID   uint            `json:"item_id" gorm:"not null"`
	Item     Item            `json:"item" gorm:"foreignKey:ItemID"`
	Quantity int             `json:"quantity" gorm:"not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
