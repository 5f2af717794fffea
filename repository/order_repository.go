package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

// OrderRepository deliberately exposes no generic update for orders. After
// Create, the only writer is TransitionStatus; every other field is frozen.
type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	RestaurantID uint               `json:"restaurantId"`
	Total        int64              `json:"totalAmount"`
	Status       entity.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total, status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListForRestaurant(restaurantID uint, status *entity.OrderStatus, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Preload("Items").Where("restaurant_id = ?", restaurantID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []entity.Order
	err := q.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListAll(limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []entity.Order
	err := r.DB.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

type StatusCount struct {
	Status entity.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

func (r *OrderRepository) CountByStatus() ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out).Error
	return out, err
}

// TransitionStatus is the guarded compare-and-write for the status column.
// It only applies when the stored status still equals from, so of two racing
// transitions exactly one observes rows affected.
func (r *OrderRepository) TransitionStatus(db *gorm.DB, orderID uint, from, to entity.OrderStatus) (bool, error) {
	res := db.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
