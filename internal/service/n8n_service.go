package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/go-resty/resty/v2"
)

type N8nServiceInterface interface {
	Trigger(ctx context.Context, payload dto.N8nPayload) (string, error)
}

type N8nService struct {
	WebhookURL string
	client     *resty.Client
}

func NewN8nService(cfg *config.N8nConfig) *N8nService {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "JobTracker-AI/1.0").
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-Source", "jobtracker-ai")
	if u, err := url.Parse(cfg.WebhookURL); err == nil && u.Host != "" {
		client.SetHeader("X-Railway-Domain", u.Host)
	}
	return &N8nService{
		WebhookURL: cfg.WebhookURL,
		client:     client,
	}
}

// Trigger posts the payload to the workflow webhook and relays its raw reply.
func (s *N8nService) Trigger(ctx context.Context, payload dto.N8nPayload) (string, error) {
	if s.WebhookURL == "" {
		return "", fmt.Errorf("N8N_WEBHOOK_URL not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.WebhookURL)
	if err != nil {
		return "", fmt.Errorf("n8n webhook request failed: %w", err)
	}

	log.Printf("N8N response status: %d for request %s", resp.StatusCode(), payload.RequestID)

	if resp.IsError() {
		body := resp.String()
		if body == "" {
			body = "Unknown error"
		}
		return "", fmt.Errorf("n8n webhook failed: %d - %s", resp.StatusCode(), body)
	}

	body := resp.String()
	if body == "" {
		body = "OK"
	}
	return body, nil
}
