package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelectedJob is a job picked from the combined application/LinkedIn list.
type SelectedJob struct {
	ID   string
	Type string
}

// ParseSelectedJobID splits "app_<id>" and "linkedin_<id>" selections. A bare
// id is treated as a job application.
func ParseSelectedJobID(raw string) *SelectedJob {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	switch {
	case strings.HasPrefix(raw, "app_"):
		return &SelectedJob{ID: strings.TrimPrefix(raw, "app_"), Type: model.JobTypeApplication}
	case strings.HasPrefix(raw, "linkedin_"):
		return &SelectedJob{ID: strings.TrimPrefix(raw, "linkedin_"), Type: model.JobTypeLinkedIn}
	default:
		return &SelectedJob{ID: raw, Type: model.JobTypeApplication}
	}
}

// ApplicationID returns the job application uuid when the selection is one.
func (s *SelectedJob) ApplicationID() *uuid.UUID {
	if s == nil || s.Type != model.JobTypeApplication {
		return nil
	}
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil
	}
	return &id
}

type jobLookup struct {
	applications JobApplicationRepository
	linkedIn     LinkedInJobRepository
}

// fillForm copies company, title and description from the selected job into
// any form field the user left empty. A selection that no longer exists is
// ignored.
func (l jobLookup) fillForm(ctx context.Context, userID string, sel *SelectedJob, form *dto.GenerationForm) error {
	if sel == nil {
		return nil
	}
	var company, title, description string
	switch sel.Type {
	case model.JobTypeApplication:
		if l.applications == nil || sel.ApplicationID() == nil {
			return nil
		}
		app, err := l.applications.FindByID(ctx, userID, sel.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		company, title = app.CompanyName, app.JobTitle
		description = app.JobDescription
		if description == "" {
			description = app.Notes
		}
	case model.JobTypeLinkedIn:
		if l.linkedIn == nil {
			return nil
		}
		job, err := l.linkedIn.FindByID(ctx, sel.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		company, title, description = job.CompanyName, job.Title, job.Description
	}
	if strings.TrimSpace(form.CompanyName) == "" {
		form.CompanyName = company
	}
	if strings.TrimSpace(form.JobTitle) == "" {
		form.JobTitle = title
	}
	if strings.TrimSpace(form.JobDescription) == "" {
		form.JobDescription = description
	}
	return nil
}

func validateGenerationForm(form dto.GenerationForm) error {
	errs := map[string]string{}
	if strings.TrimSpace(form.CompanyName) == "" {
		errs["company_name"] = "Please enter a company name"
	}
	if strings.TrimSpace(form.JobTitle) == "" {
		errs["job_title"] = "Please enter a job title"
	}
	if strings.TrimSpace(form.JobDescription) == "" {
		errs["job_description"] = "Please enter a job description"
	}
	if len(errs) > 0 {
		return newValidationError(errs)
	}
	return nil
}
