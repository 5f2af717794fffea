package ws

import (
	"log"
	"net/http"
	"time"

	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub       *Hub
	resolvers map[string]ChannelResolver
}

func NewHandler(hub *Hub, restRepo *repository.RestaurantRepository) *Handler {
	return &Handler{hub: hub, resolvers: defaultResolvers(restRepo)}
}

// Serve upgrades an authenticated request to a WebSocket subscription. The
// WS auth middleware has already verified the credential and stashed
// userId/role/claims; an unrecognized role connects but joins nothing.
func (h *Handler) Serve(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	var channels []string
	if resolver, ok := h.resolvers[role]; ok {
		channels = resolver.Channels(userID)
	} else {
		log.Printf("[ws] unrecognized role %q for user %d, joining no channel", role, userID)
	}

	var expiresAt time.Time
	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(*utils.Claims); ok && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	sub := subscription{conn: conn, channels: channels, userID: userID}
	h.hub.register <- sub
	log.Printf("[ws] user %d (%s) connected, channels %v", userID, role, channels)

	// The credential expires mid-connection: force-disconnect and tell the
	// client to re-authenticate.
	var expireTimer *time.Timer
	if !expiresAt.IsZero() {
		expireTimer = time.AfterFunc(time.Until(expiresAt), func() {
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation,
				"credential expired, re-authenticate")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(5*time.Second))
			conn.Close()
		})
	}

	go h.readLoop(sub, expireTimer)
}

// readLoop drains client frames until disconnect. Subscribers send nothing
// meaningful; the read keeps close/ping handling alive.
func (h *Handler) readLoop(sub subscription, expireTimer *time.Timer) {
	defer func() {
		if expireTimer != nil {
			expireTimer.Stop()
		}
		h.hub.unregister <- sub
		log.Printf("[ws] user %d disconnected", sub.userID)
	}()

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
