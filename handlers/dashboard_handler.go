package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ClassifyRunner triggers one classification batch.
type ClassifyRunner interface {
	Run(ctx context.Context) (int, error)
}

// DashboardHandler serves the protected analytics surface. Unlike the
// public chat endpoints, this surface reports real errors.
type DashboardHandler struct {
	Store DashboardStore
	Job   ClassifyRunner
}

// Metrics returns daily counters, optionally bounded by ?from and ?to
// (YYYY-MM-DD).
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.Store.MetricsRange(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		slog.Error("Failed to load metrics", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load metrics",
		})
	}
	return c.JSON(fiber.Map{"metrics": metrics})
}

// Leads returns captured leads, newest first.
func (h *DashboardHandler) Leads(c *fiber.Ctx) error {
	leads, err := h.Store.Leads(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		slog.Error("Failed to load leads", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load leads",
		})
	}
	return c.JSON(fiber.Map{"leads": leads})
}

// SessionMessages returns the full transcript of one session.
func (h *DashboardHandler) SessionMessages(c *fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	messages, err := h.Store.SessionMessages(c.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to load session messages", "error", err, "sessionID", sessionID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load messages",
		})
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// RunClassify triggers one classification batch on demand.
func (h *DashboardHandler) RunClassify(c *fiber.Ctx) error {
	tagged, err := h.Job.Run(c.Context())
	if err != nil {
		slog.Error("Classification run failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Classification run failed",
		})
	}
	return c.JSON(fiber.Map{"tagged": tagged})
}

// WebSocketUpgrade gates the live-feed route to WebSocket requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
