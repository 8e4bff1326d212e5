package repository

import (
	"context"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"gorm.io/gorm"
)

type JobApplicationRepository struct {
	db *gorm.DB
}

func NewJobApplicationRepository(db *gorm.DB) *JobApplicationRepository {
	return &JobApplicationRepository{db}
}

func (r *JobApplicationRepository) Create(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *JobApplicationRepository) Update(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *JobApplicationRepository) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.JobApplication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *JobApplicationRepository) FindByID(ctx context.Context, userID, id string) (*model.JobApplication, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var app model.JobApplication
	err := r.db.WithContext(ctx).First(&app, "id = ? AND user_id = ?", id, userID).Error
	return &app, err
}

func (r *JobApplicationRepository) List(ctx context.Context, userID, status string, limit, offset int) ([]model.JobApplication, int64, error) {
	var (
		apps  []model.JobApplication
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.JobApplication{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error
	return apps, total, err
}
