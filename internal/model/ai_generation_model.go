package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenerationTypeResume      = "resume"
	GenerationTypeCoverLetter = "cover-letter"

	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderN8n        = "n8n"
)

// ErrorContentPrefix marks a generation row written for a failed workflow run.
const ErrorContentPrefix = "Error:"

type AIGeneration struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RequestID        string     `gorm:"type:varchar(128);uniqueIndex" json:"request_id"`
	UserID           string     `gorm:"type:varchar(64);index" json:"user_id"`
	JobApplicationID *uuid.UUID `gorm:"type:uuid" json:"job_application_id"`
	Type             string     `gorm:"type:varchar(50)" json:"type"`
	Provider         string     `gorm:"type:varchar(50)" json:"provider"`
	Content          string     `gorm:"type:text" json:"content"`
	IsUsed           bool       `json:"is_used"`
	GeneratedOn      time.Time  `json:"generated_on"`
}

func (g *AIGeneration) TableName() string {
	return "ai_generations"
}

func IsGenerationType(s string) bool {
	return s == GenerationTypeResume || s == GenerationTypeCoverLetter
}
