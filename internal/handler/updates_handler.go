package handler

import (
	"babyname-be/internal/pkg/logger"
	internalWS "babyname-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpdatesHandler upgrades browsers onto the favorites push feed. There is no
// auth: the app serves a guest session, connections are grouped purely by the
// self-assigned session id.
type UpdatesHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewUpdatesHandler(hub *internalWS.Hub, log logger.ILogger) *UpdatesHandler {
	return &UpdatesHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *UpdatesHandler) ServeWs(c *fiber.Ctx) error {
	sessionId := c.Query("session")
	if sessionId == "" {
		sessionId = c.Get("X-Session-Id")
	}
	if sessionId == "" {
		sessionId = "guest"
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("UpdatesHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, conn, sessionId)
			h.logger.Info("UpdatesHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the updates feed route.
func (h *UpdatesHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/updates", h.ServeWs)
}
