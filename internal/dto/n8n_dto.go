package dto

import (
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
)

type N8nTriggerRequest struct {
	Type string         `json:"type"`
	Data GenerationForm `json:"data"`
}

// N8nPayloadData is the exact shape the workflow expects under "data".
type N8nPayloadData struct {
	CompanyName        string  `json:"company_name"`
	JobTitle           string  `json:"job_title"`
	JobDescription     string  `json:"job_description"`
	SelectedJobID      *string `json:"selected_job_id"`
	HiringManager      string  `json:"hiring_manager"`
	Tone               string  `json:"tone"`
	PersonalExperience string  `json:"personal_experience"`
	WhyCompany         string  `json:"why_company"`
}

type N8nPayload struct {
	Type      string         `json:"type"`
	UserID    string         `json:"user_id"`
	UserEmail string         `json:"user_email"`
	RequestID string         `json:"request_id"`
	Timestamp string         `json:"timestamp"`
	Data      N8nPayloadData `json:"data"`
}

type N8nTriggerResult struct {
	RequestID   string     `json:"request_id"`
	N8nResponse string     `json:"n8n_response"`
	PayloadSent N8nPayload `json:"payload_sent"`
}

type N8nResponseMetadata struct {
	KeywordsFound        []string `json:"keywords_found"`
	ATSScore             float64  `json:"ats_score"`
	SuggestionsCount     int      `json:"suggestions_count"`
	ToneUsed             string   `json:"tone_used"`
	WordCount            int      `json:"word_count"`
	PersonalizationScore float64  `json:"personalization_score"`
}

// N8nCallback is the body the workflow posts back when a run finishes.
// job_application_id is kept raw because the workflow sends "null" and ""
// as well as real ids.
type N8nCallback struct {
	RequestID        string               `json:"request_id"`
	Type             string               `json:"type"`
	Status           string               `json:"status"`
	Content          string               `json:"content"`
	ErrorMessage     string               `json:"error_message"`
	ProcessingTime   float64              `json:"processing_time"`
	Metadata         *N8nResponseMetadata `json:"metadata"`
	JobApplicationID string               `json:"job_application_id"`
}

type N8nResult struct {
	RequestID    string `json:"request_id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Content      string `json:"content,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type N8nStatusDTO struct {
	Generation    *model.N8nGeneration `json:"generation"`
	Progress      float64              `json:"progress"`
	TimeRemaining int                  `json:"time_remaining"`
	CheckedAt     time.Time            `json:"checked_at"`
}
