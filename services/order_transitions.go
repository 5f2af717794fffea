package services

import (
	"errors"
	"fmt"

	"backend/entity"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

// invalidTransition builds the error clients use to render guidance: it
// always names the legal next states from the current one.
func invalidTransition(current, target entity.OrderStatus) error {
	next := current.NextStates()
	var hint string
	if len(next) == 0 {
		hint = "none (terminal state)"
	} else {
		hint = fmt.Sprint(next)
	}
	return apperr.Newf(apperr.KindInvalidTransition,
		"cannot move order from %s to %s; allowed next states: %s", current, target, hint)
}

// transition applies a validated status change with the guarded
// compare-and-write. A racer that got there first makes the guard miss; the
// loser then sees an InvalidTransition built from the fresh status, never a
// corrupted one.
func (s *OrderService) transition(o *entity.Order, target entity.OrderStatus) (*entity.Order, error) {
	if !o.Status.CanTransitionTo(target) {
		return nil, invalidTransition(o.Status, target)
	}

	ok, err := s.Repo.TransitionStatus(s.DB, o.ID, o.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := s.Repo.Get(o.ID)
		if err != nil {
			return nil, err
		}
		return nil, invalidTransition(fresh.Status, target)
	}

	updated, err := s.Repo.Get(o.ID)
	if err != nil {
		return nil, err
	}
	s.Notify.OrderStatusChanged(updated)
	return updated, nil
}

// TransitionByProvider drives the restaurant-side transitions (accept,
// reject, advance). Only the provider owning the order's restaurant may call
// it, and CANCELLED stays customer-only.
func (s *OrderService) TransitionByProvider(providerID, orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	if !target.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown status %q", target)
	}
	if target == entity.StatusCancelled {
		return nil, apperr.New(apperr.KindForbidden, "only the customer may cancel an order")
	}

	o, err := s.Repo.Get(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}

	owned, err := s.RestRepo.IsOwnedBy(o.RestaurantID, providerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.New(apperr.KindForbidden, "order does not belong to your restaurant")
	}

	return s.transition(o, target)
}

// CancelByCustomer drives the one customer-side transition,
// PENDING → CANCELLED, on the customer's own order.
func (s *OrderService) CancelByCustomer(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.Get(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.New(apperr.KindForbidden, "not your order")
	}
	return s.transition(o, entity.StatusCancelled)
}
