package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/TucanHome/tucan-chat-api/classifier"
	"github.com/TucanHome/tucan-chat-api/config"
	"github.com/TucanHome/tucan-chat-api/models"
)

// completer is the slice of the completion client the resolver needs.
type completer interface {
	Complete(ctx context.Context, system string, turns []models.ChatTurn) (string, error)
}

// IntentResolver decides whether a user turn asks for products and
// which catalog term to search. The model-based classifier is the
// primary path; every failure of it, from transport errors to
// non-JSON output, silently falls back to the regex table.
type IntentResolver struct {
	completions completer
}

// NewIntentResolver creates a resolver over the given completion client.
func NewIntentResolver(completions completer) *IntentResolver {
	return &IntentResolver{completions: completions}
}

// Resolve never fails: the worst outcome is the fallback result.
func (r *IntentResolver) Resolve(ctx context.Context, text string) models.ProductIntent {
	if r.completions != nil {
		raw, err := r.completions.Complete(ctx, config.IntentPrompt, []models.ChatTurn{
			{Role: models.SenderUser, Content: text},
		})
		if err == nil {
			var intent models.ProductIntent
			if jsonErr := json.Unmarshal([]byte(strings.TrimSpace(raw)), &intent); jsonErr == nil {
				return intent
			}
			slog.Warn("Intent classifier returned non-JSON output, using fallback",
				"output", truncateForLog(raw, 200),
			)
		} else {
			slog.Warn("Intent classifier unavailable, using fallback", "error", err)
		}
	}

	need, terms := classifier.FallbackProductIntent(text)
	return models.ProductIntent{NeedProducts: need, Terms: terms}
}

func truncateForLog(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
