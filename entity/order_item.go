package entity

import (
	"gorm.io/gorm"
)

// OrderItem is the order-time snapshot of a cart line; it never tracks later
// menu changes.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Qty        int    `json:"qty"`
}
