package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterServiceInterface interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type OpenRouterService struct {
	APIKey      string
	Model       string
	Temperature float64
	client      *resty.Client
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(120*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.APIKey)
	if cfg.Referer != "" {
		client.SetHeader("HTTP-Referer", cfg.Referer)
	}
	if cfg.Title != "" {
		client.SetHeader("X-Title", cfg.Title)
	}
	return &OpenRouterService{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: 0.7,
		client:      client,
	}
}

// Chat sends one system+user exchange and returns the first choice's content.
func (s *OpenRouterService) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": userPrompt},
			},
			"temperature": s.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if resp.IsError() {
		log.Printf("OpenRouter error response: %s", resp.String())
		return "", fmt.Errorf("OpenRouter API error: %s", resp.Status())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no content received from OpenRouter API")
	}
	return text, nil
}
