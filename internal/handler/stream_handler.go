package handler

import (
	"pumphouse-kiosk-be/internal/pkg/logger"
	internalWS "pumphouse-kiosk-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StreamHandler upgrades renderer screens onto the frame stream. Screens
// are trusted devices on the kiosk's local network; they identify
// themselves with a screen_id so multi-screen installs can be told apart
// in the logs.
type StreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewStreamHandler(hub *internalWS.Hub, sysLogger logger.ILogger) *StreamHandler {
	return &StreamHandler{
		hub:    hub,
		logger: sysLogger,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/stream/v1", h.Stream)
}

func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	screenID := uuid.New()
	if raw := c.Query("screen_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid screen_id")
		}
		screenID = parsed
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Screen connected", map[string]interface{}{"screen_id": screenID})
			internalWS.ServeWs(h.hub, conn, screenID)
			h.logger.Info("StreamHandler", "Screen disconnected", map[string]interface{}{"screen_id": screenID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
