package services

import (
	"errors"
	"strings"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
	Notify   Notifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	menuRepo *repository.MenuRepository,
	restRepo *repository.RestaurantRepository,
	notify Notifier,
) *OrderService {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo,
		MenuRepo: menuRepo, RestRepo: restRepo, Notify: notify,
	}
}

type CheckoutIn struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

func (in *CheckoutIn) validate() error {
	if strings.TrimSpace(in.Street) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.Pincode) == "" {
		return apperr.New(apperr.KindValidation, "complete delivery address is required")
	}
	return nil
}

// Checkout converts the customer's cart into an order. Preconditions run in
// a fixed sequence with the first failure winning; the order write and the
// cart delete then happen in one transaction, so a concurrent reader sees
// either the cart or the order, never both. The order_created event goes out
// only after commit.
func (s *OrderService) Checkout(userID uint, in *CheckoutIn) (*entity.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	cart, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindEmptyCart, "cart is empty")
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperr.New(apperr.KindEmptyCart, "cart is empty")
	}

	rest, err := s.RestRepo.Get(cart.RestaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindRestaurantGone, "restaurant no longer exists")
	}
	if err != nil {
		return nil, err
	}
	if !rest.AcceptsOrders() {
		return nil, apperr.New(apperr.KindRestaurantUnavailable,
			"restaurant is currently closed or unavailable")
	}

	// Every cart line must still map to a live, available menu item.
	for _, it := range cart.Items {
		live, err := s.MenuRepo.Get(it.MenuItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindItemRemoved,
				"item %q is no longer on the menu", it.Name)
		}
		if err != nil {
			return nil, err
		}
		if !live.IsAvailable {
			return nil, apperr.Newf(apperr.KindItemUnavailable,
				"item %q is currently unavailable", it.Name)
		}
	}

	// Snapshot exactly what the cart held at check time; the total is copied,
	// not recomputed from live prices.
	order := &entity.Order{
		UserID:       userID,
		RestaurantID: rest.ID,
		Total:        cart.Total,
		Status:       entity.StatusPending,
		DeliveryAddress: entity.DeliveryAddress{
			Street:  strings.TrimSpace(in.Street),
			City:    strings.TrimSpace(in.City),
			Pincode: strings.TrimSpace(in.Pincode),
		},
		Items: make([]entity.OrderItem, 0, len(cart.Items)),
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Qty:        it.Qty,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, order); err != nil {
			return err
		}
		return s.CartRepo.DeleteCart(tx, cart.ID)
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "checkout failed", err)
	}

	s.Notify.OrderCreated(order)
	return order, nil
}

// ----- Reads -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListForUser(userID, limit)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "order not found")
	}
	return o, err
}

// ListForProvider lists orders of the provider's own restaurant.
func (s *OrderService) ListForProvider(providerID uint, status *entity.OrderStatus, limit int) ([]entity.Order, error) {
	rest, err := s.RestRepo.FindByOwner(providerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "no restaurant for this provider")
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.ListForRestaurant(rest.ID, status, limit)
}

func (s *OrderService) ListAll(limit int) ([]entity.Order, error) {
	return s.Repo.ListAll(limit)
}

func (s *OrderService) Stats() ([]repository.StatusCount, error) {
	return s.Repo.CountByStatus()
}
