package models

import "time"

// UTM carries the attribution parameters sent by the widget.
type UTM struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Content  string `json:"content,omitempty"`
	Term     string `json:"term,omitempty"`
}

// SessionContext is the session envelope every widget request carries.
type SessionContext struct {
	SessionID string `json:"session_id"`
	Page      string `json:"page"`
	UTM       UTM    `json:"utm"`
	StartedAt string `json:"started_at,omitempty"` // RFC 3339
	UserAgent string `json:"user_agent,omitempty"`
}

// MinSessionIDLength is the minimum accepted session identifier length.
// Shorter identifiers make the request a persistence no-op, not an error.
const MinSessionIDLength = 6

// Valid reports whether the context identifies a usable session.
func (sc SessionContext) Valid() bool {
	return len(sc.SessionID) >= MinSessionIDLength
}

// StartedAtTime parses the widget-provided start timestamp,
// falling back to now when absent or malformed.
func (sc SessionContext) StartedAtTime() time.Time {
	if sc.StartedAt != "" {
		if t, err := time.Parse(time.RFC3339, sc.StartedAt); err == nil {
			return t
		}
	}
	return time.Now()
}

// ChatRequest is the conversational endpoint input.
type ChatRequest struct {
	SessionContext
	Messages []ChatTurn `json:"messages"`
}

// ChatResponse is the conversational endpoint output.
type ChatResponse struct {
	OutputText string    `json:"output_text"`
	Products   []Product `json:"products"`
}

// LogEvent is the fire-and-forget event accepted by the logging endpoint.
type LogEvent struct {
	SessionContext
	Kind string        `json:"kind"`
	TS   string        `json:"ts,omitempty"` // RFC 3339
	Data *LogEventData `json:"data,omitempty"`
}

// LogEventData is the payload of a "message" log event.
type LogEventData struct {
	Who  string `json:"who,omitempty"`
	Text string `json:"text,omitempty"`
}

// LeadRequest is the lead-capture endpoint input.
type LeadRequest struct {
	SessionContext
	Lead LeadPayload `json:"lead"`
}

// LeadPayload carries the submitted contact data.
type LeadPayload struct {
	Nome      string `json:"nome"`
	Whats     string `json:"whats"`
	LGPDOptin bool   `json:"lgpd_optin"`
}
