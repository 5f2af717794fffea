package entity

import (
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

type DeliveryAddress struct {
	Street  string `gorm:"not null" json:"street"`
	City    string `gorm:"not null" json:"city"`
	Pincode string `gorm:"not null" json:"pincode"`
}

// Order is the frozen result of a checkout. Everything except Status (and
// UpdatedAt) is immutable once written; the repository exposes no generic
// update for orders, and BeforeUpdate is the last-resort guard behind that.
type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Total  int64       `gorm:"not null" json:"totalAmount"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:PENDING;index" json:"status"`

	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:addr_" json:"deliveryAddress"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// BeforeUpdate rejects any update touching a frozen column. Firing here is a
// bug in the caller, not a user error; the only legitimate writer is the
// repository's guarded status transition.
func (o *Order) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("UserID", "RestaurantID", "Total",
		"Street", "City", "Pincode") {
		return apperr.Newf(apperr.KindImmutability,
			"order %d is immutable: only status may change", o.ID)
	}
	return nil
}
