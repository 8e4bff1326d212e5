package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
)

type ApplicationUsecase struct {
	repo JobApplicationRepository
}

func NewApplicationUsecase(repo JobApplicationRepository) *ApplicationUsecase {
	return &ApplicationUsecase{repo: repo}
}

func newValidationError(errs map[string]string) error {
	return util.NewFormError("validation failed", errs)
}

func validateApplication(req dto.JobApplicationRequest) error {
	errs := map[string]string{}
	if strings.TrimSpace(req.CompanyName) == "" {
		errs["company_name"] = "company name is required"
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		errs["job_title"] = "job title is required"
	}
	if req.Status != "" && !model.IsApplicationStatus(req.Status) {
		errs["status"] = "status must be one of " + strings.Join(model.ApplicationStatuses, ", ")
	}
	if len(errs) > 0 {
		return newValidationError(errs)
	}
	return nil
}

func applyApplicationRequest(app *model.JobApplication, req dto.JobApplicationRequest) {
	app.CompanyName = strings.TrimSpace(req.CompanyName)
	app.JobTitle = strings.TrimSpace(req.JobTitle)
	app.JobDescription = req.JobDescription
	app.Location = req.Location
	app.JobURL = req.JobURL
	app.SalaryRange = req.SalaryRange
	app.AppliedOn = req.AppliedOn
	app.Notes = req.Notes
	if req.Status != "" {
		app.Status = req.Status
	}
	if app.Status == "" {
		app.Status = model.ApplicationStatusApplied
	}
}

func (uc *ApplicationUsecase) Create(ctx context.Context, userID string, req dto.JobApplicationRequest) (*model.JobApplication, error) {
	if err := validateApplication(req); err != nil {
		return nil, err
	}
	app := &model.JobApplication{UserID: userID}
	applyApplicationRequest(app, req)
	if err := uc.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (uc *ApplicationUsecase) Get(ctx context.Context, userID, id string) (*model.JobApplication, error) {
	return uc.repo.FindByID(ctx, userID, id)
}

func (uc *ApplicationUsecase) List(ctx context.Context, userID string, q dto.ListQuery) ([]model.JobApplication, int64, error) {
	q = q.Normalize()
	if q.Status != "" && !model.IsApplicationStatus(q.Status) {
		return nil, 0, newValidationError(map[string]string{"status": "unknown status"})
	}
	return uc.repo.List(ctx, userID, q.Status, q.PageSize, q.Offset())
}

func (uc *ApplicationUsecase) Update(ctx context.Context, userID, id string, req dto.JobApplicationRequest) (*model.JobApplication, error) {
	if err := validateApplication(req); err != nil {
		return nil, err
	}
	app, err := uc.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyApplicationRequest(app, req)
	if err := uc.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (uc *ApplicationUsecase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}
