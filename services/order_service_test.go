package services

import (
	"errors"
	"strings"
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

func addr() *CheckoutIn {
	return &CheckoutIn{Street: "42 Side St", City: "Springfield", Pincode: "12345"}
}

func fillCart(t *testing.T, env *testEnv) {
	t.Helper()
	if _, err := env.carts.Add(env.customer.ID, &AddItemIn{MenuItemID: env.burger.ID, Qty: 2}); err != nil {
		t.Fatalf("fill cart: %v", err)
	}
}

func TestCheckoutCreatesPendingOrderAndDeletesCart(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	order, err := env.orders.Checkout(env.customer.ID, addr())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Status != entity.StatusPending {
		t.Fatalf("status = %s, want PENDING", order.Status)
	}
	if order.Total != 2000 {
		t.Fatalf("total = %d, want 2000", order.Total)
	}
	if order.RestaurantID != env.rest.ID || order.UserID != env.customer.ID {
		t.Fatalf("ownership wrong: %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Burger" ||
		order.Items[0].UnitPrice != 1000 || order.Items[0].Qty != 2 {
		t.Fatalf("items not snapshotted: %+v", order.Items)
	}
	if order.DeliveryAddress.Street != "42 Side St" {
		t.Fatalf("address not stored: %+v", order.DeliveryAddress)
	}

	// Cart must be gone for this customer.
	var count int64
	env.db.Model(&entity.Cart{}).Where("user_id = ?", env.customer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("cart survived checkout")
	}

	if len(env.notify.created) != 1 || env.notify.created[0].ID != order.ID {
		t.Fatalf("order_created emitted %d times, want exactly 1", len(env.notify.created))
	}
}

func TestCheckoutTotalIsSnapshotNotLivePrice(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	// Price change after the cart was built must not affect the order.
	if err := env.db.Model(&entity.MenuItem{}).Where("id = ?", env.burger.ID).
		Update("price", 9999).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	order, err := env.orders.Checkout(env.customer.ID, addr())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Total != 2000 || order.Items[0].UnitPrice != 1000 {
		t.Fatalf("order picked up live price: total=%d unit=%d", order.Total, order.Items[0].UnitPrice)
	}
}

func TestCheckoutMissingAddress(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	_, err := env.orders.Checkout(env.customer.ID, &CheckoutIn{Street: "x", City: " ", Pincode: "1"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orders.Checkout(env.customer.ID, addr())
	if !apperr.IsKind(err, apperr.KindEmptyCart) {
		t.Fatalf("err = %v, want EMPTY_CART", err)
	}
}

func TestCheckoutRestaurantGone(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	if err := env.db.Unscoped().Delete(&entity.Restaurant{}, env.rest.ID).Error; err != nil {
		t.Fatalf("delete restaurant: %v", err)
	}
	_, err := env.orders.Checkout(env.customer.ID, addr())
	if !apperr.IsKind(err, apperr.KindRestaurantGone) {
		t.Fatalf("err = %v, want RESTAURANT_GONE", err)
	}

	// Reject only: the cart stays for the customer to edit.
	var count int64
	env.db.Model(&entity.Cart{}).Where("user_id = ?", env.customer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("cart cleared on rejected checkout")
	}
}

func TestCheckoutRestaurantClosed(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	if err := env.db.Model(&entity.Restaurant{}).Where("id = ?", env.rest.ID).
		Update("is_open", false).Error; err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := env.orders.Checkout(env.customer.ID, addr())
	if !apperr.IsKind(err, apperr.KindRestaurantUnavailable) {
		t.Fatalf("err = %v, want RESTAURANT_UNAVAILABLE", err)
	}
}

func TestCheckoutItemRemovedNamesItem(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	if err := env.db.Unscoped().Delete(&entity.MenuItem{}, env.burger.ID).Error; err != nil {
		t.Fatalf("delete item: %v", err)
	}
	_, err := env.orders.Checkout(env.customer.ID, addr())
	if !apperr.IsKind(err, apperr.KindItemRemoved) {
		t.Fatalf("err = %v, want ITEM_REMOVED", err)
	}
	if msg := apperr.MessageOf(err); !strings.Contains(msg, "Burger") {
		t.Fatalf("error does not name the item: %q", msg)
	}
}

func TestCheckoutItemUnavailableNamesItem(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	if err := env.db.Model(&entity.MenuItem{}).Where("id = ?", env.burger.ID).
		Update("is_available", false).Error; err != nil {
		t.Fatalf("mark unavailable: %v", err)
	}
	_, err := env.orders.Checkout(env.customer.ID, addr())
	if !apperr.IsKind(err, apperr.KindItemUnavailable) {
		t.Fatalf("err = %v, want ITEM_UNAVAILABLE", err)
	}
	if msg := apperr.MessageOf(err); !strings.Contains(msg, "Burger") {
		t.Fatalf("error does not name the item: %q", msg)
	}
}

// TestCheckoutRollsBackOnFailure injects a fault into the transaction after
// the order insert so the cart delete never runs; the whole checkout must
// roll back to the pre-checkout state.
func TestCheckoutRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env)

	injected := errors.New("injected failure")
	err := env.db.Callback().Create().After("gorm:create").Register("test:fail_orders", func(tx *gorm.DB) {
		if tx.Statement.Table == "orders" && tx.Error == nil {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = env.orders.Checkout(env.customer.ID, addr())
	if err == nil {
		t.Fatalf("checkout succeeded despite injected failure")
	}

	var orders, carts int64
	env.db.Model(&entity.Order{}).Count(&orders)
	env.db.Model(&entity.Cart{}).Where("user_id = ?", env.customer.ID).Count(&carts)
	if orders != 0 {
		t.Fatalf("order row leaked out of rolled-back checkout")
	}
	if carts != 1 {
		t.Fatalf("cart lost in rolled-back checkout")
	}
	if len(env.notify.created) != 0 {
		t.Fatalf("event emitted for a rolled-back checkout")
	}
}

