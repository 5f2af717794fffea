package entity

import (
	"gorm.io/gorm"
)

// Cart stages the items a customer intends to order, all from one
// restaurant. Total is a stored column kept equal to the sum of
// unit_price*qty across the items; the cart service recomputes it in the
// same transaction as every item mutation.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"` // one cart per customer
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Total int64 `json:"total"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
