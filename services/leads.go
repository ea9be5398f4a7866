package services

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TucanHome/tucan-chat-api/models"
)

const (
	maxLeadNameLength  = 120
	maxLeadWhatsLength = 60
)

// UpsertLead stores the contact for a session. Later submissions win
// entirely: name, whats and opt-in are replaced, only created_at is
// kept from the first write.
func (s *Store) UpsertLead(ctx context.Context, sessionID, nome, whats string, optin bool) (*models.Lead, error) {
	nome = truncateValid(nome, maxLeadNameLength)
	whats = truncateValid(whats, maxLeadWhatsLength)

	filter := bson.M{"session_id": sessionID}
	update := bson.M{
		"$set": bson.M{
			"nome":       nome,
			"whats":      whats,
			"lgpd_optin": optin,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := s.db.Collection("leads").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return nil, err
	}

	if result.UpsertedCount > 0 {
		slog.Info("New lead captured", "sessionID", sessionID, "optin", optin)
	} else {
		slog.Info("Lead updated", "sessionID", sessionID, "optin", optin)
	}

	return &models.Lead{
		SessionID: sessionID,
		Nome:      nome,
		Whats:     whats,
		LGPDOptin: optin,
	}, nil
}

// Leads returns captured leads, newest first.
func (s *Store) Leads(ctx context.Context, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		limit = 100
	}

	cursor, err := s.db.Collection("leads").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}
