package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCart returns the user's cart with items, or gorm.ErrRecordNotFound.
func (r *CartRepository) GetCart(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreate reads the user's cart inside tx, creating it homed to
// restaurantID if the user has none yet.
func (r *CartRepository) GetOrCreate(tx *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID, RestaurantID: restaurantID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) CountItems(tx *gorm.DB, cartID uint) (int64, error) {
	var count int64
	err := tx.Model(&entity.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error
	return count, err
}

func (r *CartRepository) SetRestaurant(tx *gorm.DB, cartID, restaurantID uint) error {
	return tx.Model(&entity.Cart{}).
		Where("id = ?", cartID).
		Update("restaurant_id", restaurantID).Error
}

// UpsertItem merges a line for the same menu item into the existing one,
// re-snapshotting name and price to the current values; otherwise it appends
// a new line.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, m *entity.MenuItem, qty int) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ?", cartID, m.ID).First(&exist).Error
	if err == nil {
		exist.Qty += qty
		exist.Name = m.Name
		exist.UnitPrice = m.Price
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row := entity.CartItem{
		CartID:     cartID,
		MenuItemID: m.ID,
		Name:       m.Name,
		UnitPrice:  m.Price,
		Qty:        qty,
	}
	return tx.Create(&row).Error
}

// FindItem returns the cart line for a menu item, or gorm.ErrRecordNotFound.
func (r *CartRepository) FindItem(tx *gorm.DB, cartID, menuItemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ?", cartID, menuItemID).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) SetItemQty(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).
		Where("id = ?", itemID).
		Update("qty", qty).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, itemID uint) error {
	return tx.Unscoped().Delete(&entity.CartItem{}, itemID).Error
}

func (r *CartRepository) RemoveAllItems(tx *gorm.DB, cartID uint) error {
	return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

// DeleteCart removes the cart record and its items entirely; an emptied cart
// is not left behind as an empty shell.
func (r *CartRepository) DeleteCart(tx *gorm.DB, cartID uint) error {
	if err := r.RemoveAllItems(tx, cartID); err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Cart{}, cartID).Error
}

// RecomputeTotal re-derives the stored total from the item rows. Runs in the
// same transaction as the mutation so the total never drifts from the items.
func (r *CartRepository) RecomputeTotal(tx *gorm.DB, cartID uint) error {
	return tx.Exec(`
		UPDATE carts
		   SET total = (
		       SELECT COALESCE(SUM(unit_price * qty), 0)
		         FROM cart_items
		        WHERE cart_id = carts.id AND deleted_at IS NULL
		   )
		 WHERE id = ?
	`, cartID).Error
}
