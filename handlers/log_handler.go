package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TucanHome/tucan-chat-api/models"
)

// LogHandler serves the fire-and-forget event endpoint. Whatever
// happens internally, the caller gets {ok:true}.
type LogHandler struct {
	Store ChatStore
	Feed  Broadcaster
}

// Handle accepts a discriminated event and persists message events.
func (h *LogHandler) Handle(c *fiber.Ctx) error {
	ok := fiber.Map{"ok": true}

	var event models.LogEvent
	if err := c.BodyParser(&event); err != nil {
		slog.Warn("Malformed log event", "error", err)
		return c.JSON(ok)
	}

	if !event.Valid() {
		return c.JSON(ok)
	}

	ctx := c.Context()
	if err := h.Store.EnsureSession(ctx, event.SessionContext); err != nil {
		slog.Error("Failed to ensure session", "error", err, "sessionID", event.SessionID)
		return c.JSON(ok)
	}

	if event.Kind == "message" && event.Data != nil {
		who := models.SenderBot
		if event.Data.Who == models.SenderUser {
			who = models.SenderUser
		}

		ts := time.Now()
		if event.TS != "" {
			if parsed, err := time.Parse(time.RFC3339, event.TS); err == nil {
				ts = parsed
			}
		}

		message := &models.Message{
			SessionID: event.SessionID,
			Who:       who,
			Text:      event.Data.Text,
			Timestamp: ts,
		}
		if err := h.Store.InsertMessage(ctx, message); err != nil {
			slog.Error("Failed to persist logged message", "error", err, "sessionID", event.SessionID)
		} else if h.Feed != nil {
			h.Feed.Broadcast("message", message)
		}
	}

	return c.JSON(ok)
}
