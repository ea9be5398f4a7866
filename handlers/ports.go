package handlers

import (
	"context"

	"github.com/TucanHome/tucan-chat-api/models"
)

// The interfaces below are the persistence and collaborator slices the
// handlers depend on. They are satisfied by the services package and by
// fakes in tests.

// SessionStore ensures and patches chat sessions.
type SessionStore interface {
	EnsureSession(ctx context.Context, sc models.SessionContext) error
	UpdateSessionName(ctx context.Context, sessionID, name string) error
}

// MessageStore appends chat turns.
type MessageStore interface {
	InsertMessage(ctx context.Context, m *models.Message) error
}

// LeadStore upserts captured contacts.
type LeadStore interface {
	UpsertLead(ctx context.Context, sessionID, nome, whats string, optin bool) (*models.Lead, error)
}

// Completer produces a model answer for a conversation.
type Completer interface {
	Complete(ctx context.Context, system string, turns []models.ChatTurn) (string, error)
}

// IntentResolver decides product interest for the latest user turn.
// It never fails; the worst outcome is the deterministic fallback.
type IntentResolver interface {
	Resolve(ctx context.Context, text string) models.ProductIntent
}

// ProductSearcher looks products up by free-text term.
type ProductSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
}

// ContactSyncer pushes lead contacts to the marketing list.
type ContactSyncer interface {
	Enabled() bool
	UpsertContact(ctx context.Context, nome, whats string) error
}

// Broadcaster pushes events to the dashboard live feed.
type Broadcaster interface {
	Broadcast(eventType string, data interface{})
}

// DashboardStore serves the analytics read endpoints.
type DashboardStore interface {
	MetricsRange(ctx context.Context, from, to string) ([]models.DailyMetric, error)
	Leads(ctx context.Context, limit int) ([]models.Lead, error)
	SessionMessages(ctx context.Context, sessionID string) ([]models.Message, error)
}
