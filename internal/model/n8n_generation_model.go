package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	GenerationStatusProcessing = "processing"
	GenerationStatusCompleted  = "completed"
	GenerationStatusFailed     = "failed"
	GenerationStatusTimedOut   = "timed_out"

	JobTypeApplication = "application"
	JobTypeLinkedIn    = "linkedin"
)

// N8nGeneration tracks one workflow run from trigger to callback.
type N8nGeneration struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RequestID            string         `gorm:"type:varchar(128);uniqueIndex" json:"request_id"`
	UserID               string         `gorm:"type:varchar(64);index" json:"user_id"`
	Type                 string         `gorm:"type:varchar(50)" json:"type"`
	JobID                *string        `gorm:"type:varchar(64);index" json:"job_id"`
	JobType              string         `gorm:"type:varchar(50)" json:"job_type"`
	CompanyName          string         `json:"company_name"`
	JobTitle             string         `json:"job_title"`
	Status               string         `gorm:"type:varchar(50)" json:"status"`
	Content              string         `gorm:"type:text" json:"content"`
	ATSScore             float64        `json:"ats_score"`
	Keywords             pq.StringArray `gorm:"type:text[]" json:"keywords"`
	SuggestionsCount     int            `json:"suggestions_count"`
	Tone                 string         `json:"tone"`
	PersonalizationScore float64        `json:"personalization_score"`
	WordCount            int            `json:"word_count"`
	ErrorMessage         string         `gorm:"type:text" json:"error_message"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	CompletedAt          *time.Time     `json:"completed_at"`
}

func (g *N8nGeneration) TableName() string {
	return "n8n_generations"
}

func (g *N8nGeneration) Finished() bool {
	return g.Status != GenerationStatusProcessing
}
