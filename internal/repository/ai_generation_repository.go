package repository

import (
	"context"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"gorm.io/gorm"
)

type AIGenerationRepository struct {
	db *gorm.DB
}

func NewAIGenerationRepository(db *gorm.DB) *AIGenerationRepository {
	return &AIGenerationRepository{db}
}

func (r *AIGenerationRepository) Create(ctx context.Context, gen *model.AIGeneration) error {
	return r.db.WithContext(ctx).Create(gen).Error
}

func (r *AIGenerationRepository) FindByRequestID(ctx context.Context, requestID string) (*model.AIGeneration, error) {
	var gen model.AIGeneration
	err := r.db.WithContext(ctx).First(&gen, "request_id = ?", requestID).Error
	return &gen, err
}

func (r *AIGenerationRepository) List(ctx context.Context, userID, genType string, limit, offset int) ([]model.AIGeneration, int64, error) {
	var (
		gens  []model.AIGeneration
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.AIGeneration{}).Where("user_id = ?", userID)
	if genType != "" {
		q = q.Where("type = ?", genType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("generated_on DESC").Limit(limit).Offset(offset).Find(&gens).Error
	return gens, total, err
}

func (r *AIGenerationRepository) MarkUsed(ctx context.Context, userID, id string, used bool) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.AIGeneration{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_used", used)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AIGenerationRepository) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.AIGeneration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
