package repository

import (
	"context"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"gorm.io/gorm"
)

// MaxDocuments caps a user's document listing.
const MaxDocuments = 100

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) FindByID(ctx context.Context, userID, id string) (*model.Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var doc model.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ? AND user_id = ?", id, userID).Error
	return &doc, err
}

func (r *DocumentRepository) List(ctx context.Context, userID string) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_on DESC").
		Limit(MaxDocuments).
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
