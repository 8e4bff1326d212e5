package config

import (
	"os"
	"sync"
	"time"
)

type N8nConfig struct {
	WebhookURL       string
	CallbackSecret   string
	PollInterval     time.Duration
	MaxAttempts      int
	ProgressDuration time.Duration
}

var (
	n8nConfig *N8nConfig
	n8nOnce   sync.Once
)

// LoadN8nConfig polls every 2s for at most 150 attempts, matching the
// five minute progress window.
func LoadN8nConfig() *N8nConfig {
	n8nOnce.Do(func() {
		n8nConfig = &N8nConfig{
			WebhookURL:       os.Getenv("N8N_WEBHOOK_URL"),
			CallbackSecret:   os.Getenv("N8N_CALLBACK_SECRET"),
			PollInterval:     2 * time.Second,
			MaxAttempts:      150,
			ProgressDuration: 300 * time.Second,
		}
	})
	return n8nConfig
}
