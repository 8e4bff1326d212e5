package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test/model",
		Referer: "https://tracker.example",
		Title:   "JobTracker AI",
	})
}

func TestOpenRouterChat(t *testing.T) {
	var got map[string]any
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://tracker.example", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "JobTracker AI", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"use more verbs"}}]}`))
	})

	text, err := svc.Chat(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "use more verbs", text)
	assert.Equal(t, "test/model", got["model"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenRouterChatHTTPError(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := svc.Chat(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenRouter API error: 429")
}

func TestOpenRouterChatEmptyChoices(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := svc.Chat(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestOpenRouterChatMissingKey(t *testing.T) {
	svc := NewOpenRouterService(&config.OpenRouterConfig{BaseURL: "http://127.0.0.1:0"})
	_, err := svc.Chat(context.Background(), "s", "u")
	require.Error(t, err)
}
