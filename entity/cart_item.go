package entity

import (
	"gorm.io/gorm"
)

// CartItem snapshots name and price from the menu item at add time.
type CartItem struct {
	gorm.Model
	CartID uint `gorm:"index" json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `gorm:"index" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Qty       int    `json:"qty"`
}

func (ci *CartItem) Subtotal() int64 {
	return ci.UnitPrice * int64(ci.Qty)
}
