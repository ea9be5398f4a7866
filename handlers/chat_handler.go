package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/TucanHome/tucan-chat-api/classifier"
	"github.com/TucanHome/tucan-chat-api/config"
	"github.com/TucanHome/tucan-chat-api/models"
)

// ChatStore is the persistence slice of the chat turn.
type ChatStore interface {
	SessionStore
	MessageStore
}

// ChatHandler serves the conversational endpoint. Nothing on this path
// is allowed to fail the turn: every collaborator error degrades to the
// fallback reply or an empty product list, always with HTTP 200.
type ChatHandler struct {
	Store        ChatStore
	Completions  Completer
	Intents      IntentResolver
	Catalog      ProductSearcher
	Feed         Broadcaster
	CatalogLimit int
}

// Handle processes one chat turn.
func (h *ChatHandler) Handle(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Malformed chat request", "error", err)
		return c.JSON(models.ChatResponse{
			OutputText: config.FallbackReply,
			Products:   []models.Product{},
		})
	}

	ctx := c.Context()
	persist := req.Valid()

	if err := h.Store.EnsureSession(ctx, req.SessionContext); err != nil {
		slog.Error("Failed to ensure session", "error", err, "sessionID", req.SessionID)
	}

	output, err := h.Completions.Complete(ctx, config.SystemPrompt, req.Messages)
	if err != nil || strings.TrimSpace(output) == "" {
		slog.Warn("Completion failed, using fallback reply",
			"error", err,
			"sessionID", req.SessionID,
		)
		output = config.FallbackReply
	}

	if persist {
		botMessage := &models.Message{
			SessionID: req.SessionID,
			Who:       models.SenderBot,
			Text:      output,
			Timestamp: time.Now(),
		}
		if err := h.Store.InsertMessage(ctx, botMessage); err != nil {
			slog.Error("Failed to persist bot message", "error", err, "sessionID", req.SessionID)
		} else if h.Feed != nil {
			h.Feed.Broadcast("message", botMessage)
		}
	}

	lastUser := lastUserTurn(req.Messages)

	// Name extraction and product-intent resolution are independent;
	// run them concurrently and join before assembling the response.
	var intent models.ProductIntent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if lastUser == "" {
			return nil
		}
		if name := classifier.ExtractFirstName(lastUser); name != "" && persist {
			if err := h.Store.UpdateSessionName(gctx, req.SessionID, name); err != nil {
				slog.Error("Failed to update session name", "error", err, "sessionID", req.SessionID)
			}
		}
		return nil
	})
	g.Go(func() error {
		if lastUser != "" {
			intent = h.Intents.Resolve(gctx, lastUser)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Chat side work failed", "error", err, "sessionID", req.SessionID)
	}

	products := []models.Product{}
	if intent.NeedProducts && h.Catalog != nil {
		found, err := h.Catalog.Search(ctx, intent.Terms, h.CatalogLimit)
		if err != nil {
			slog.Warn("Catalog search failed, returning no products",
				"error", err,
				"terms", intent.Terms,
			)
		} else {
			products = found
		}
	}

	return c.JSON(models.ChatResponse{
		OutputText: output,
		Products:   products,
	})
}

// lastUserTurn returns the content of the most recent user turn.
func lastUserTurn(turns []models.ChatTurn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.SenderUser {
			return turns[i].Content
		}
	}
	return ""
}
