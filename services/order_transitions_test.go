package services

import (
	"strings"
	"testing"

	"backend/entity"
	"backend/pkg/apperr"
)

func placeOrder(t *testing.T, env *testEnv) *entity.Order {
	t.Helper()
	fillCart(t, env)
	order, err := env.orders.Checkout(env.customer.ID, addr())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

func TestProviderAcceptsPendingOrder(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	updated, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != entity.StatusAccepted {
		t.Fatalf("status = %s, want ACCEPTED", updated.Status)
	}
	if !updated.UpdatedAt.After(order.UpdatedAt) && !updated.UpdatedAt.Equal(order.UpdatedAt) {
		t.Fatalf("update timestamp went backwards")
	}
	if len(env.notify.statusChanged) != 1 {
		t.Fatalf("order_status_changed emitted %d times, want 1", len(env.notify.statusChanged))
	}
}

func TestFullDeliveryPath(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	path := []entity.OrderStatus{
		entity.StatusAccepted,
		entity.StatusPreparing,
		entity.StatusOutForDelivery,
		entity.StatusDelivered,
	}
	for _, target := range path {
		updated, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, target)
		if err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("status = %s, want %s", updated.Status, target)
		}
	}
	if len(env.notify.statusChanged) != len(path) {
		t.Fatalf("got %d events, want %d", len(env.notify.statusChanged), len(path))
	}

	// DELIVERED is terminal.
	_, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusPreparing)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Fatalf("err = %v, want INVALID_TRANSITION", err)
	}
}

func TestSkippingAcceptedIsRejectedWithGuidance(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	_, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusPreparing)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Fatalf("err = %v, want INVALID_TRANSITION", err)
	}
	msg := apperr.MessageOf(err)
	if !strings.Contains(msg, string(entity.StatusAccepted)) ||
		!strings.Contains(msg, string(entity.StatusRejected)) {
		t.Fatalf("error does not name the legal next states: %q", msg)
	}

	fresh, err := env.orders.Repo.Get(order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Status != entity.StatusPending {
		t.Fatalf("status changed by rejected transition: %s", fresh.Status)
	}
}

func TestCustomerCancelsPendingOrder(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	updated, err := env.orders.CancelByCustomer(env.customer.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != entity.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", updated.Status)
	}
}

func TestCustomerCannotCancelAcceptedOrder(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	if _, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := env.orders.CancelByCustomer(env.customer.ID, order.ID)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Fatalf("err = %v, want INVALID_TRANSITION", err)
	}
}

func TestProviderCannotCancel(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	_, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusCancelled)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want FORBIDDEN", err)
	}
}

func TestForeignProviderForbidden(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)
	stranger := seedUser(t, env.db, "other@example.com", entity.RoleProvider)
	seedRestaurant(t, env.db, stranger, true, true)

	_, err := env.orders.TransitionByProvider(stranger.ID, order.ID, entity.StatusAccepted)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want FORBIDDEN", err)
	}
}

func TestForeignCustomerForbidden(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)
	stranger := seedUser(t, env.db, "other@example.com", entity.RoleCustomer)

	_, err := env.orders.CancelByCustomer(stranger.ID, order.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want FORBIDDEN", err)
	}
}

// TestRacingTransitionsExactlyOneWins reproduces two actors who both read
// PENDING and then race their writes. The second write's guard misses and
// surfaces INVALID_TRANSITION off the fresh status; the stored status is
// whatever the winner wrote, never a mix.
func TestRacingTransitionsExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	// Both "requests" hold the same stale PENDING read.
	stale, err := env.orders.Repo.Get(order.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if _, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusAccepted); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	// The loser's guarded write must miss.
	ok, err := env.orders.Repo.TransitionStatus(env.db, stale.ID, stale.Status, entity.StatusRejected)
	if err != nil {
		t.Fatalf("guarded write: %v", err)
	}
	if ok {
		t.Fatalf("both racing transitions applied")
	}

	// And the service path reports it as an invalid transition.
	_, err = env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.StatusRejected)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Fatalf("err = %v, want INVALID_TRANSITION", err)
	}

	fresh, err := env.orders.Repo.Get(order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Status != entity.StatusAccepted {
		t.Fatalf("status = %s, want the winner's ACCEPTED", fresh.Status)
	}
}

func TestUnknownTargetStatus(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	_, err := env.orders.TransitionByProvider(env.provider.ID, order.ID, entity.OrderStatus("SHIPPED"))
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}

// TestOrderFieldsFrozenAfterCreation drives the last-resort immutability
// guard: any update touching a non-status column must be refused.
func TestOrderFieldsFrozenAfterCreation(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	err := env.db.Model(&entity.Order{Model: order.Model}).
		Updates(map[string]any{"total": int64(1)}).Error
	if !apperr.IsKind(err, apperr.KindImmutability) {
		t.Fatalf("err = %v, want IMMUTABILITY_VIOLATION", err)
	}

	err = env.db.Model(&entity.Order{Model: order.Model}).
		Updates(map[string]any{"addr_city": "Elsewhere"}).Error
	if !apperr.IsKind(err, apperr.KindImmutability) {
		t.Fatalf("err = %v, want IMMUTABILITY_VIOLATION", err)
	}

	fresh, err := env.orders.Repo.Get(order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Total != order.Total || fresh.DeliveryAddress.City != order.DeliveryAddress.City {
		t.Fatalf("frozen fields changed: %+v", fresh)
	}
}
