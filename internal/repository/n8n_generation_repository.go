package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"gorm.io/gorm"
)

type N8nGenerationRepository struct {
	db *gorm.DB
}

func NewN8nGenerationRepository(db *gorm.DB) *N8nGenerationRepository {
	return &N8nGenerationRepository{db}
}

func (r *N8nGenerationRepository) Create(ctx context.Context, gen *model.N8nGeneration) error {
	return r.db.WithContext(ctx).Create(gen).Error
}

func (r *N8nGenerationRepository) Update(ctx context.Context, gen *model.N8nGeneration) error {
	return r.db.WithContext(ctx).Save(gen).Error
}

// MarkTimedOut moves a still-processing run to timed_out. It reports whether
// a row changed; a run finished in the meantime is left alone.
func (r *N8nGenerationRepository) MarkTimedOut(ctx context.Context, requestID, message string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.N8nGeneration{}).
		Where("request_id = ? AND status = ?", requestID, model.GenerationStatusProcessing).
		Updates(map[string]any{
			"status":        model.GenerationStatusTimedOut,
			"error_message": message,
			"updated_at":    at,
			"completed_at":  at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *N8nGenerationRepository) FindByRequestID(ctx context.Context, requestID string) (*model.N8nGeneration, error) {
	var gen model.N8nGeneration
	err := r.db.WithContext(ctx).First(&gen, "request_id = ?", requestID).Error
	return &gen, err
}

func (r *N8nGenerationRepository) FindByJobID(ctx context.Context, userID, jobID, genType string) (*model.N8nGeneration, error) {
	var gen model.N8nGeneration
	q := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID)
	if genType != "" {
		q = q.Where("type = ?", genType)
	}
	err := q.Order("created_at DESC").First(&gen).Error
	return &gen, err
}

func (r *N8nGenerationRepository) List(ctx context.Context, userID, genType string) ([]model.N8nGeneration, error) {
	var gens []model.N8nGeneration
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if genType != "" {
		q = q.Where("type = ?", genType)
	}
	err := q.Order("created_at DESC").Find(&gens).Error
	return gens, err
}
