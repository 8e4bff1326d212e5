package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplicationUsecase_CRUD(t *testing.T) {
	uc := NewApplicationUsecase(newFakeApplicationRepo())
	ctx := context.Background()

	app, err := uc.Create(ctx, testUser, dto.JobApplicationRequest{CompanyName: " Acme ", JobTitle: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", app.CompanyName)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)

	updated, err := uc.Update(ctx, testUser, app.ID.String(), dto.JobApplicationRequest{
		CompanyName: "Acme",
		JobTitle:    "SRE",
		Status:      model.ApplicationStatusInterviewing,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInterviewing, updated.Status)

	list, total, err := uc.List(ctx, testUser, dto.ListQuery{Status: model.ApplicationStatusInterviewing})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, err = uc.Get(ctx, "someone-else", app.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, uc.Delete(ctx, testUser, app.ID.String()))
	_, err = uc.Get(ctx, testUser, app.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplicationUsecase_Validation(t *testing.T) {
	uc := NewApplicationUsecase(newFakeApplicationRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		req    dto.JobApplicationRequest
		fields []string
	}{
		{"missing fields", dto.JobApplicationRequest{}, []string{"company_name", "job_title"}},
		{"bad status", dto.JobApplicationRequest{CompanyName: "a", JobTitle: "b", Status: "ghosted"}, []string{"status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, testUser, tt.req)
			var formErr *util.FormError
			require.True(t, errors.As(err, &formErr))
			for _, f := range tt.fields {
				assert.Contains(t, formErr.Errors, f)
			}
		})
	}

	_, err := uc.Update(ctx, testUser, uuid.NewString(), dto.JobApplicationRequest{CompanyName: "a", JobTitle: "b"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, _, err = uc.List(ctx, testUser, dto.ListQuery{Status: "ghosted"})
	var formErr *util.FormError
	assert.True(t, errors.As(err, &formErr))
}
