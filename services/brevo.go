package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoBaseURL = "https://api.brevo.com/v3"

// BrevoClient syncs captured leads into a Brevo marketing list.
// It is strictly best-effort: callers fire it in the background and
// only log its errors.
type BrevoClient struct {
	httpClient *http.Client
	limiter    *RateLimiter
	baseURL    string
	apiKey     string
	listID     int
}

// NewBrevoClient creates a client; an empty API key disables it.
func NewBrevoClient(apiKey string, listID int) *BrevoClient {
	return &BrevoClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: NewRateLimiter(100, time.Minute),
		baseURL: brevoBaseURL,
		apiKey:  apiKey,
		listID:  listID,
	}
}

// Enabled reports whether the client is configured to sync contacts.
func (b *BrevoClient) Enabled() bool {
	return b != nil && b.apiKey != ""
}

// brevoContact is the contacts API payload.
type brevoContact struct {
	Attributes    map[string]string `json:"attributes"`
	UpdateEnabled bool              `json:"updateEnabled"`
	ListIDs       []int             `json:"listIds"`
}

// UpsertContact creates or updates the contact on the configured list.
func (b *BrevoClient) UpsertContact(ctx context.Context, nome, whats string) error {
	if !b.Enabled() {
		return nil
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload := brevoContact{
		Attributes: map[string]string{
			"NOME":   nome,
			"WHATS":  whats,
			"ORIGEM": "Chat Tucan",
		},
		UpdateEnabled: true,
		ListIDs:       []int{b.listID},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/contacts", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call contacts API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("contacts API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
