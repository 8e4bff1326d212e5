package dto

// GenerationForm is the job context submitted for resume suggestions or a
// cover letter.
type GenerationForm struct {
	CompanyName        string `json:"company_name"`
	JobTitle           string `json:"job_title"`
	JobDescription     string `json:"job_description"`
	SelectedJobID      string `json:"selected_job_id"`
	DocumentID         string `json:"document_id"`
	HiringManager      string `json:"hiring_manager"`
	Tone               string `json:"tone"`
	PersonalExperience string `json:"personal_experience"`
	WhyCompany         string `json:"why_company"`
}

type GenerationMetadata struct {
	KeywordsFound    []string `json:"keywords_found"`
	ATSScore         float64  `json:"ats_score"`
	SuggestionsCount int      `json:"suggestions_count"`
}

type GenerationResult struct {
	RequestID string             `json:"request_id"`
	Provider  string             `json:"provider"`
	Type      string             `json:"type"`
	Content   string             `json:"content"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type AISettingsRequest struct {
	GeminiAPIKey string `json:"gemini_api_key"`
	GeminiModel  string `json:"gemini_model"`
	AIProvider   string `json:"ai_provider"`
}

type AISettingsDTO struct {
	GeminiModel     string `json:"gemini_model"`
	AIProvider      string `json:"ai_provider"`
	HasCustomAPIKey bool   `json:"has_custom_api_key"`
}
