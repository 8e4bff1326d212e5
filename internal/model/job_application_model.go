package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusApplied      = "applied"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOffer        = "offer"
	ApplicationStatusRejected     = "rejected"
	ApplicationStatusAccepted     = "accepted"
	ApplicationStatusWithdrawn    = "withdrawn"
)

var ApplicationStatuses = []string{
	ApplicationStatusApplied,
	ApplicationStatusInterviewing,
	ApplicationStatusOffer,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
	ApplicationStatusWithdrawn,
}

type JobApplication struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         string     `gorm:"type:varchar(64);index;not null" json:"user_id"`
	CompanyName    string     `gorm:"not null" json:"company_name"`
	JobTitle       string     `gorm:"not null" json:"job_title"`
	JobDescription string     `gorm:"type:text" json:"job_description"`
	Location       string     `json:"location"`
	JobURL         string     `json:"job_url"`
	SalaryRange    string     `json:"salary_range"`
	Status         string     `gorm:"type:varchar(50);default:'applied'" json:"status"`
	AppliedOn      *time.Time `json:"applied_on"`
	Notes          string     `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *JobApplication) TableName() string {
	return "job_applications"
}

func IsApplicationStatus(s string) bool {
	for _, status := range ApplicationStatuses {
		if status == s {
			return true
		}
	}
	return false
}
