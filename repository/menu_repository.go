package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) Get(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListForRestaurant(restaurantID uint, availableOnly bool) ([]entity.MenuItem, error) {
	q := r.DB.Where("restaurant_id = ?", restaurantID)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var out []entity.MenuItem
	err := q.Order("id").Find(&out).Error
	return out, err
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Save(m *entity.MenuItem) error {
	return r.DB.Save(m).Error
}

func (r *MenuRepository) SetAvailability(id uint, available bool) error {
	return r.DB.Model(&entity.MenuItem{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}
