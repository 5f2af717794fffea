package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`

	// Admin approval gate; unapproved restaurants take no orders.
	IsApproved bool `gorm:"default:false" json:"isApproved"`
	IsOpen     bool `gorm:"default:true" json:"isOpen"`

	UserID uint `gorm:"uniqueIndex" json:"userId"` // provider (users.id), one restaurant per provider
	User   User `json:"-"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
}

// AcceptsOrders reports whether the restaurant can be ordered from at all.
func (r *Restaurant) AcceptsOrders() bool {
	return r.IsApproved && r.IsOpen
}
