package repository

import (
	"context"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSettingRepository struct {
	db *gorm.DB
}

func NewUserSettingRepository(db *gorm.DB) *UserSettingRepository {
	return &UserSettingRepository{db}
}

func (r *UserSettingRepository) Find(ctx context.Context, userID string) (*model.UserSetting, error) {
	var s model.UserSetting
	err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	return &s, err
}

func (r *UserSettingRepository) Upsert(ctx context.Context, s *model.UserSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"gemini_api_key", "gemini_model", "ai_provider", "updated_at"}),
	}).Create(s).Error
}
