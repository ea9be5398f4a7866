package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/TucanHome/tucan-chat-api/models"
)

// completionRequest is the body sent to the chat-completions endpoint.
type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionResponse is the relevant slice of the endpoint's answer.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// CompletionClient talks to an OpenAI-compatible chat-completions
// endpoint. A circuit breaker fails calls fast while the service is
// down; callers treat any error as "no answer".
type CompletionClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	breaker    *gobreaker.CircuitBreaker
}

// NewCompletionClient creates a client for the given endpoint.
func NewCompletionClient(baseURL, apiKey, model string) *CompletionClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "completion",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Completion circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &CompletionClient{
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		breaker: breaker,
	}
}

// Complete sends the system prompt and the conversation turns and
// returns the model's text answer.
func (c *CompletionClient) Complete(ctx context.Context, system string, turns []models.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("completion service not configured")
	}

	messages := make([]completionMessage, 0, len(turns)+1)
	messages = append(messages, completionMessage{Role: "system", Content: system})
	for _, turn := range turns {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, completionMessage{Role: role, Content: turn.Content})
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.send(ctx, completionRequest{Model: c.model, Messages: messages})
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (c *CompletionClient) send(ctx context.Context, body completionRequest) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Completion service error", "status", resp.StatusCode, "body", string(respBody))
		return "", fmt.Errorf("completion service error: %s", resp.Status)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no completion content")
	}

	slog.Info("Completion generated",
		"promptTokens", parsed.Usage.PromptTokens,
		"completionTokens", parsed.Usage.CompletionTokens,
	)

	return parsed.Choices[0].Message.Content, nil
}
