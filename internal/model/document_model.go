package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentTypeResume      = "resume"
	DocumentTypeCoverLetter = "cover-letter"
	DocumentTypePortfolio   = "portfolio"
	DocumentTypeOther       = "other"
)

type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        string     `gorm:"type:varchar(64);index;not null" json:"user_id"`
	FileName      string     `gorm:"not null" json:"file_name"`
	FileType      string     `gorm:"type:varchar(50);not null" json:"file_type"`
	FileURL       string     `json:"file_url"`
	FileSize      int64      `json:"file_size"`
	StoragePath   string     `json:"-"`
	LinkedJobID   *uuid.UUID `gorm:"type:uuid" json:"linked_job_id"`
	ResumeContent *string    `gorm:"type:text" json:"resume_content"`
	UploadedOn    time.Time  `gorm:"index" json:"uploaded_on"`
}

func (d *Document) TableName() string {
	return "documents"
}

func IsDocumentType(s string) bool {
	switch s {
	case DocumentTypeResume, DocumentTypeCoverLetter, DocumentTypePortfolio, DocumentTypeOther:
		return true
	}
	return false
}
