package model

import "time"

type UserSetting struct {
	UserID       string    `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	GeminiAPIKey string    `json:"-"`
	GeminiModel  string    `json:"gemini_model"`
	AIProvider   string    `gorm:"type:varchar(50)" json:"ai_provider"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *UserSetting) TableName() string {
	return "user_settings"
}
