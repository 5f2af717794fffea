// Package ws fans order-lifecycle events out to connected clients over
// WebSocket. Delivery is best-effort and at-most-once per emission: the HTTP
// response already confirmed the mutation to its actor, the events are a
// convenience for the other observers. Clients that were offline re-read
// state over HTTP on reconnect; there is no backlog or replay.
package ws

import (
	"log"
	"sync"

	"backend/entity"

	"github.com/gorilla/websocket"
)

type subscription struct {
	conn     *websocket.Conn
	channels []string
	userID   uint
}

type outbound struct {
	channels []string
	event    Event
}

type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // channel -> connections
	broadcast  chan outbound
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]bool),
		// Buffered so Publish never blocks a mutation; overflow is dropped.
		broadcast:  make(chan outbound, 256),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

// Run owns the channel map. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			for _, ch := range sub.channels {
				if h.clients[ch] == nil {
					h.clients[ch] = make(map[*websocket.Conn]bool)
				}
				h.clients[ch][sub.conn] = true
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			for _, ch := range sub.channels {
				if _, ok := h.clients[ch][sub.conn]; ok {
					delete(h.clients[ch], sub.conn)
					if len(h.clients[ch]) == 0 {
						delete(h.clients, ch)
					}
				}
			}
			h.mu.Unlock()
			sub.conn.Close()

		case out := <-h.broadcast:
			h.mu.Lock()
			for _, ch := range out.channels {
				for conn := range h.clients[ch] {
					if err := conn.WriteJSON(out.event); err != nil {
						log.Printf("[ws] write error on %s: %v", ch, err)
						conn.Close()
						delete(h.clients[ch], conn)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for the named channels. It never blocks: if the
// hub is backed up the event is dropped and logged, and the originating
// mutation is unaffected.
func (h *Hub) Publish(channels []string, event Event) {
	select {
	case h.broadcast <- outbound{channels: channels, event: event}:
	default:
		log.Printf("[ws] hub backlog full, dropping %s %s", event.Type, event.ID)
	}
}

// OrderCreated and OrderStatusChanged implement services.Notifier.

func (h *Hub) OrderCreated(o *entity.Order) {
	h.Publish(
		[]string{RestaurantChannel(o.RestaurantID), AdminChannel},
		newEvent(EventOrderCreated, OrderCreatedPayload{
			OrderID:      o.ID,
			RestaurantID: o.RestaurantID,
			Total:        o.Total,
		}),
	)
}

func (h *Hub) OrderStatusChanged(o *entity.Order) {
	h.Publish(
		[]string{UserChannel(o.UserID), AdminChannel},
		newEvent(EventOrderStatusChanged, OrderStatusChangedPayload{
			OrderID:   o.ID,
			Status:    o.Status,
			UpdatedAt: o.UpdatedAt,
		}),
	)
}
