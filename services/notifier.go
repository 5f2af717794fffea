package services

import (
	"backend/entity"
)

// Notifier is the hub capability handed to services at construction. Calls
// happen only after the underlying write has committed, are best-effort, and
// must never block or fail the mutation path. Tests inject a capturing fake.
type Notifier interface {
	OrderCreated(o *entity.Order)
	OrderStatusChanged(o *entity.Order)
}

// NopNotifier satisfies Notifier for wiring paths with no hub.
type NopNotifier struct{}

func (NopNotifier) OrderCreated(*entity.Order)       {}
func (NopNotifier) OrderStatusChanged(*entity.Order) {}
