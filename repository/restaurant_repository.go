package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// FindByOwner returns the provider's restaurant (one per provider).
func (r *RestaurantRepository) FindByOwner(userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("user_id = ?", userID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restaurantID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restaurantID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Save(rest *entity.Restaurant) error {
	return r.DB.Save(rest).Error
}

// ListApproved returns restaurants visible to customers.
func (r *RestaurantRepository) ListApproved(limit int) ([]entity.Restaurant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Restaurant
	err := r.DB.Where("is_approved = ?", true).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) ListPendingApproval() ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.Where("is_approved = ?", false).Order("id").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) SetApproved(id uint, approved bool) error {
	return r.DB.Model(&entity.Restaurant{}).
		Where("id = ?", id).
		Update("is_approved", approved).Error
}
