package services

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TucanHome/tucan-chat-api/models"
)

// Store wraps all chat persistence. Callers on the conversational
// surface treat its errors as soft failures: log and proceed.
type Store struct {
	db *mongo.Database
}

// NewStore creates a store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// EnsureIndexes creates the unique indexes backing every conflict key.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	sessions := s.db.Collection("sessions")
	if _, err := sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"session_id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	messages := s.db.Collection("messages")
	if _, err := messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"session_id": 1}},
		{Keys: bson.M{"who": 1}},
		{Keys: bson.M{"timestamp": -1}},
	}); err != nil {
		return err
	}

	tags := s.db.Collection("message_tags")
	if _, err := tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"message_id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	metrics := s.db.Collection("metrics_daily")
	if _, err := metrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "category", Value: 1}, {Key: "item", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	leads := s.db.Collection("leads")
	if _, err := leads.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"session_id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return nil
}

// EnsureSession creates the session row on first contact. Repeat calls
// with the same identifier never overwrite the stored attribution
// fields (insert-or-ignore). A too-short identifier is accepted as a
// no-op so the widget's fire-and-forget calls never break.
func (s *Store) EnsureSession(ctx context.Context, sc models.SessionContext) error {
	if !sc.Valid() {
		slog.Debug("Ignoring request without a usable session id", "sessionID", sc.SessionID)
		return nil
	}

	filter := bson.M{"session_id": sc.SessionID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"page":         sc.Page,
			"utm_source":   sc.UTM.Source,
			"utm_medium":   sc.UTM.Medium,
			"utm_campaign": sc.UTM.Campaign,
			"utm_content":  sc.UTM.Content,
			"utm_term":     sc.UTM.Term,
			"started_at":   sc.StartedAtTime(),
			"user_agent":   sc.UserAgent,
			"created_at":   time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := s.db.Collection("sessions").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}

	if result.UpsertedCount > 0 {
		slog.Info("New session created",
			"sessionID", sc.SessionID,
			"page", sc.Page,
			"utmSource", sc.UTM.Source,
		)
	}

	return nil
}

// UpdateSessionName sets the extracted first name on an existing
// session. Only the name field is touched; absent sessions are left
// alone.
func (s *Store) UpdateSessionName(ctx context.Context, sessionID, name string) error {
	if len(sessionID) < models.MinSessionIDLength || name == "" {
		return nil
	}

	_, err := s.db.Collection("sessions").UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"name": name}},
	)
	return err
}

// InsertMessage appends one chat turn. Text is truncated to the
// storage cap and the calendar day is derived from the timestamp.
func (s *Store) InsertMessage(ctx context.Context, m *models.Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	m.Text = truncateValid(m.Text, models.MaxMessageLength)
	m.Day = m.Timestamp.Format("2006-01-02")

	result, err := s.db.Collection("messages").InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

// SessionMessages returns all turns of one session, oldest first.
func (s *Store) SessionMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	cursor, err := s.db.Collection("messages").Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.M{"timestamp": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UntaggedUserMessages returns up to limit user messages that have no
// tag row yet, ascending by identifier so reprocessing is reproducible.
func (s *Store) UntaggedUserMessages(ctx context.Context, limit int) ([]models.Message, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"who": models.SenderUser}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "message_tags",
			"localField":   "_id",
			"foreignField": "message_id",
			"as":           "tags",
		}}},
		{{Key: "$match", Value: bson.M{"tags": bson.M{"$size": 0}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.M{"tags": 0}}},
	}

	cursor, err := s.db.Collection("messages").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// truncateValid cuts s to at most max bytes, backing off so a
// multi-byte rune is never split at the cap.
func truncateValid(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// InsertMessageTags writes the tag row for a message at most once.
// It reports whether the row was newly inserted; a conflict on
// message_id is a no-op and returns false.
func (s *Store) InsertMessageTags(ctx context.Context, t *models.MessageTags) (bool, error) {
	if t.TaggedAt.IsZero() {
		t.TaggedAt = time.Now()
	}

	filter := bson.M{"message_id": t.MessageID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"room":      t.Room,
			"product":   t.Product,
			"style":     t.Style,
			"color":     t.Color,
			"intent":    t.Intent,
			"has_doubt": t.HasDoubt,
			"tagged_at": t.TaggedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := s.db.Collection("message_tags").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}
