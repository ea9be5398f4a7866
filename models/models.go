package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sender values for chat messages
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// MaxMessageLength is the hard cap applied to stored message text
const MaxMessageLength = 8000

// Session represents a browser chat session with its attribution data.
// Created once per session_id; attribution fields are never overwritten
// on repeat contact, only the extracted first name is updated later.
type Session struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	Page        string             `bson:"page" json:"page"`
	UTMSource   string             `bson:"utm_source,omitempty" json:"utm_source,omitempty"`
	UTMMedium   string             `bson:"utm_medium,omitempty" json:"utm_medium,omitempty"`
	UTMCampaign string             `bson:"utm_campaign,omitempty" json:"utm_campaign,omitempty"`
	UTMContent  string             `bson:"utm_content,omitempty" json:"utm_content,omitempty"`
	UTMTerm     string             `bson:"utm_term,omitempty" json:"utm_term,omitempty"`
	StartedAt   time.Time          `bson:"started_at" json:"started_at"`
	UserAgent   string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Message represents a single chat turn. Immutable once stored.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Who       string             `bson:"who" json:"who"` // "user" or "bot"
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Day       string             `bson:"day" json:"day"` // YYYY-MM-DD, derived from Timestamp
}

// MessageTags holds the categorical labels derived from one user message.
// Written at most once per message; a conflict on message_id is a no-op.
type MessageTags struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID primitive.ObjectID `bson:"message_id" json:"message_id"`
	Room      string             `bson:"room,omitempty" json:"room,omitempty"`
	Product   string             `bson:"product,omitempty" json:"product,omitempty"`
	Style     string             `bson:"style,omitempty" json:"style,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Intent    string             `bson:"intent,omitempty" json:"intent,omitempty"`
	HasDoubt  bool               `bson:"has_doubt" json:"has_doubt"`
	TaggedAt  time.Time          `bson:"tagged_at" json:"tagged_at"`
}

// DailyMetric is a per-day counter for one (category, item) pair.
// The count only ever grows.
type DailyMetric struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date     string             `bson:"date" json:"date"` // YYYY-MM-DD
	Category string             `bson:"category" json:"category"`
	Item     string             `bson:"item" json:"item"`
	Count    int64              `bson:"count" json:"count"`
}

// Lead is a captured contact with marketing opt-in, one per session.
// Later submissions replace name/whats/optin entirely.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Nome      string             `bson:"nome" json:"nome"`
	Whats     string             `bson:"whats" json:"whats"`
	LGPDOptin bool               `bson:"lgpd_optin" json:"lgpd_optin"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Product is a catalog entry returned by product search.
type Product struct {
	ID       string   `bson:"product_id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Price    float64  `bson:"price" json:"price"`
	Image    string   `bson:"image" json:"image"`
	URL      string   `bson:"url" json:"url"`
	Keywords []string `bson:"keywords,omitempty" json:"-"`
}

// ProductIntent is the outcome of product-intent resolution for a user turn.
type ProductIntent struct {
	NeedProducts bool   `json:"need_products"`
	Terms        string `json:"terms"`
}

// ChatTurn is one prior turn sent by the widget with the chat request.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
