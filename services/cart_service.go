package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository, rr *repository.RestaurantRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr, RestRepo: rr}
}

type AddItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Qty        int  `json:"qty" binding:"required,min=1"`
}

type UpdateQtyIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Qty        int  `json:"qty" binding:"min=0"`
}

// Get returns the user's cart, or nil when the user has none.
func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	c, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return c, err
}

// checkOrderable validates the menu item and its restaurant for adding.
func (s *CartService) checkOrderable(menuItemID uint) (*entity.MenuItem, *entity.Restaurant, error) {
	m, err := s.MenuRepo.Get(menuItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.New(apperr.KindNotFound, "menu item not found")
	}
	if err != nil {
		return nil, nil, err
	}
	rest, err := s.RestRepo.Get(m.RestaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.New(apperr.KindNotFound, "restaurant not found")
	}
	if err != nil {
		return nil, nil, err
	}
	if !m.IsAvailable {
		return nil, nil, apperr.Newf(apperr.KindUnavailable, "menu item %q is currently unavailable", m.Name)
	}
	if !rest.AcceptsOrders() {
		return nil, nil, apperr.New(apperr.KindUnavailable, "restaurant is not accepting orders")
	}
	return m, rest, nil
}

// Add puts qty of a menu item into the user's cart, snapshotting name and
// price. An existing cart holding items from another restaurant is a
// conflict the caller must resolve through SwitchRestaurant; an empty cart
// is silently re-homed.
func (s *CartService) Add(userID uint, in *AddItemIn) (*entity.Cart, error) {
	if in.Qty < 1 {
		return nil, apperr.New(apperr.KindValidation, "qty must be at least 1")
	}
	m, rest, err := s.checkOrderable(in.MenuItemID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreate(tx, userID, rest.ID)
		if err != nil {
			return err
		}
		if c.RestaurantID != rest.ID {
			n, err := s.CartRepo.CountItems(tx, c.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperr.New(apperr.KindRestaurantConflict,
					"cart holds items from a different restaurant; clear it first")
			}
			if err := s.CartRepo.SetRestaurant(tx, c.ID, rest.ID); err != nil {
				return err
			}
		}
		if err := s.CartRepo.UpsertItem(tx, c.ID, m, in.Qty); err != nil {
			return err
		}
		return s.CartRepo.RecomputeTotal(tx, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.CartRepo.GetCart(userID)
}

// UpdateQty sets a line's quantity; 0 removes the line. When the last line
// goes, the cart record goes with it and the returned cart is nil.
func (s *CartService) UpdateQty(userID uint, in *UpdateQtyIn) (*entity.Cart, error) {
	if in.Qty < 0 {
		return nil, apperr.New(apperr.KindValidation, "qty must not be negative")
	}

	var deleted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var c entity.Cart
		err := tx.Where("user_id = ?", userID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "cart not found")
		}
		if err != nil {
			return err
		}

		it, err := s.CartRepo.FindItem(tx, c.ID, in.MenuItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "item not in cart")
		}
		if err != nil {
			return err
		}

		if in.Qty == 0 {
			if err := s.CartRepo.RemoveItem(tx, it.ID); err != nil {
				return err
			}
		} else {
			if err := s.CartRepo.SetItemQty(tx, it.ID, in.Qty); err != nil {
				return err
			}
		}

		n, err := s.CartRepo.CountItems(tx, c.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			deleted = true
			return s.CartRepo.DeleteCart(tx, c.ID)
		}
		return s.CartRepo.RecomputeTotal(tx, c.ID)
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return s.CartRepo.GetCart(userID)
}

// RemoveItem drops a line entirely; same emptying rule as UpdateQty.
func (s *CartService) RemoveItem(userID, menuItemID uint) (*entity.Cart, error) {
	return s.UpdateQty(userID, &UpdateQtyIn{MenuItemID: menuItemID, Qty: 0})
}

// SwitchRestaurant resolves a RestaurantConflict the client has confirmed:
// it clears every existing line and adds the parked item fresh, in one
// transaction.
func (s *CartService) SwitchRestaurant(userID uint, in *AddItemIn) (*entity.Cart, error) {
	if in.Qty < 1 {
		return nil, apperr.New(apperr.KindValidation, "qty must be at least 1")
	}
	m, rest, err := s.checkOrderable(in.MenuItemID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreate(tx, userID, rest.ID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.RemoveAllItems(tx, c.ID); err != nil {
			return err
		}
		if c.RestaurantID != rest.ID {
			if err := s.CartRepo.SetRestaurant(tx, c.ID, rest.ID); err != nil {
				return err
			}
		}
		if err := s.CartRepo.UpsertItem(tx, c.ID, m, in.Qty); err != nil {
			return err
		}
		return s.CartRepo.RecomputeTotal(tx, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.CartRepo.GetCart(userID)
}

// Clear deletes the user's cart outright. Missing cart is not an error.
func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var c entity.Cart
		err := tx.Where("user_id = ?", userID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return s.CartRepo.DeleteCart(tx, c.ID)
	})
}
