package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TucanHome/tucan-chat-api/models"
)

func TestCompletionClientComplete(t *testing.T) {
	var gotRequest completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Olá! Como posso ajudar?"}}]}`))
	}))
	defer server.Close()

	client := NewCompletionClient(server.URL, "test-key", "gpt-4o-mini")

	output, err := client.Complete(context.Background(), "prompt do sistema", []models.ChatTurn{
		{Role: "user", Content: "oi"},
		{Role: "assistant", Content: "olá"},
		{Role: "user", Content: "preciso de ajuda"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?", output)

	require.Len(t, gotRequest.Messages, 4)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "prompt do sistema", gotRequest.Messages[0].Content)
	assert.Equal(t, "assistant", gotRequest.Messages[2].Role)
	assert.Equal(t, "gpt-4o-mini", gotRequest.Model)
}

func TestCompletionClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewCompletionClient(server.URL, "test-key", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", []models.ChatTurn{{Role: "user", Content: "oi"}})
	assert.Error(t, err)
}

func TestCompletionClientEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewCompletionClient(server.URL, "test-key", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", []models.ChatTurn{{Role: "user", Content: "oi"}})
	assert.Error(t, err)
}

func TestCompletionClientWithoutAPIKey(t *testing.T) {
	client := NewCompletionClient("http://localhost:0", "", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", nil)
	assert.Error(t, err)
}
