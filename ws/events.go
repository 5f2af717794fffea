package ws

import (
	"fmt"
	"time"

	"backend/entity"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// Channel names. One private channel per customer, one per restaurant, one
// shared channel for all admins.
const AdminChannel = "admin:global"

func UserChannel(userID uint) string             { return fmt.Sprintf("user:%d", userID) }
func RestaurantChannel(restaurantID uint) string { return fmt.Sprintf("restaurant:%d", restaurantID) }

// Event is the wire shape pushed to subscribers. ID is unique per emission
// so receivers can dedupe duplicate deliveries.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func newEvent(eventType string, payload any) Event {
	return Event{ID: uuid.NewString(), Type: eventType, Payload: payload}
}

type OrderCreatedPayload struct {
	OrderID      uint  `json:"orderId"`
	RestaurantID uint  `json:"restaurantId"`
	Total        int64 `json:"totalAmount"`
}

type OrderStatusChangedPayload struct {
	OrderID   uint               `json:"orderId"`
	Status    entity.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
