package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TucanHome/tucan-chat-api/models"
)

const (
	AdminSessionDuration = 24 * time.Hour
	AdminSessionCookie   = "admin_session"
)

// AdminSessions stores dashboard login sessions in MongoDB.
type AdminSessions struct {
	db *mongo.Database
}

// NewAdminSessions creates the admin session store.
func NewAdminSessions(db *mongo.Database) *AdminSessions {
	return &AdminSessions{db: db}
}

// generateSessionID generates a secure random session ID
func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Create opens a new dashboard session for the given admin user.
func (a *AdminSessions) Create(ctx context.Context, username, ipAddress, userAgent string) (*models.AdminSession, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &models.AdminSession{
		ID:           primitive.NewObjectID(),
		SessionID:    sessionID,
		Username:     username,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    now,
		LastAccessed: now,
		ExpiresAt:    now.Add(AdminSessionDuration),
		IsActive:     true,
	}

	if _, err := a.db.Collection("admin_sessions").InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("create admin session: %w", err)
	}

	return session, nil
}

// Get returns the active, unexpired session or nil when there is none.
func (a *AdminSessions) Get(ctx context.Context, sessionID string) (*models.AdminSession, error) {
	collection := a.db.Collection("admin_sessions")

	var session models.AdminSession
	err := collection.FindOne(ctx, bson.M{
		"session_id": sessionID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&session)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin session: %w", err)
	}

	// Touch last accessed time; failures here never block the request
	if _, err := collection.UpdateOne(ctx,
		bson.M{"_id": session.ID},
		bson.M{"$set": bson.M{"last_accessed": time.Now()}},
	); err != nil {
		slog.Warn("Failed to touch admin session", "error", err)
	}

	return &session, nil
}

// Invalidate closes a session on logout.
func (a *AdminSessions) Invalidate(ctx context.Context, sessionID string) error {
	_, err := a.db.Collection("admin_sessions").UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	return err
}
