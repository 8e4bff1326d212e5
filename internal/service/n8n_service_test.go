package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestN8nTrigger(t *testing.T) {
	var got dto.N8nPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "JobTracker-AI/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "jobtracker-ai", r.Header.Get("X-Request-Source"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"Workflow was started"}`))
	}))
	defer srv.Close()

	svc := NewN8nService(&config.N8nConfig{WebhookURL: srv.URL + "/webhook/job-application-received"})
	body, err := svc.Trigger(context.Background(), dto.N8nPayload{
		Type:      "resume",
		UserID:    "user-1",
		RequestID: "resume-1-abc",
		Data:      dto.N8nPayloadData{CompanyName: "Acme", Tone: "professional"},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Workflow was started")
	assert.Equal(t, "resume-1-abc", got.RequestID)
	assert.Equal(t, "Acme", got.Data.CompanyName)
	assert.Nil(t, got.Data.SelectedJobID)
}

func TestN8nTriggerEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewN8nService(&config.N8nConfig{WebhookURL: srv.URL})
	body, err := svc.Trigger(context.Background(), dto.N8nPayload{RequestID: "r"})
	require.NoError(t, err)
	assert.Equal(t, "OK", body)
}

func TestN8nTriggerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("webhook not registered"))
	}))
	defer srv.Close()

	svc := NewN8nService(&config.N8nConfig{WebhookURL: srv.URL})
	_, err := svc.Trigger(context.Background(), dto.N8nPayload{RequestID: "r"})
	require.Error(t, err)
	assert.Equal(t, "n8n webhook failed: 404 - webhook not registered", err.Error())
}

func TestN8nTriggerNoWebhook(t *testing.T) {
	svc := NewN8nService(&config.N8nConfig{})
	_, err := svc.Trigger(context.Background(), dto.N8nPayload{})
	require.Error(t, err)
}
