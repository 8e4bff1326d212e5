package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type LinkedInJob struct {
	ID                  uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title               string           `json:"title"`
	Location            string           `json:"location"`
	CompanyName         string           `json:"company_name"`
	PostedAt            time.Time        `gorm:"index" json:"posted_at"`
	Description         string           `gorm:"type:text" json:"description"`
	Seniority           string           `json:"seniority"`
	EmploymentType      string           `json:"employment_type"`
	ApplyURL            string           `gorm:"uniqueIndex" json:"apply_url"`
	Source              string           `json:"source"`
	RecruiterName       string           `json:"recruiter_name"`
	RecruiterProfile    string           `json:"recruiter_profile"`
	RecruiterProfileURL string           `json:"recruiter_profile_url"`
	Embedding           *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt           time.Time        `json:"created_at"`
}

func (j *LinkedInJob) TableName() string {
	return "linkedin_jobs"
}
