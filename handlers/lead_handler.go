package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TucanHome/tucan-chat-api/models"
)

// LeadSessionStore is the persistence slice of lead capture.
type LeadSessionStore interface {
	SessionStore
	LeadStore
}

// LeadHandler captures contacts. Lead capture must never block or fail
// the chat experience, so the caller always gets {ok:true}.
type LeadHandler struct {
	Store    LeadSessionStore
	Contacts ContactSyncer
	Feed     Broadcaster
}

// Handle upserts the lead and syncs it to the marketing list in the
// background.
func (h *LeadHandler) Handle(c *fiber.Ctx) error {
	ok := fiber.Map{"ok": true}

	var req models.LeadRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Malformed lead request", "error", err)
		return c.JSON(ok)
	}

	if !req.Valid() {
		return c.JSON(ok)
	}

	ctx := c.Context()
	if err := h.Store.EnsureSession(ctx, req.SessionContext); err != nil {
		slog.Error("Failed to ensure session", "error", err, "sessionID", req.SessionID)
	}

	lead, err := h.Store.UpsertLead(ctx, req.SessionID, req.Lead.Nome, req.Lead.Whats, req.Lead.LGPDOptin)
	if err != nil {
		slog.Error("Failed to upsert lead", "error", err, "sessionID", req.SessionID)
		return c.JSON(ok)
	}

	if h.Feed != nil {
		h.Feed.Broadcast("lead", lead)
	}

	if h.Contacts != nil && h.Contacts.Enabled() {
		nome, whats := lead.Nome, lead.Whats
		go func() {
			syncCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := h.Contacts.UpsertContact(syncCtx, nome, whats); err != nil {
				slog.Warn("Marketing list sync failed", "error", err, "sessionID", req.SessionID)
			}
		}()
	}

	return c.JSON(ok)
}
