package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxLinkedInJobs caps the listing feed.
const MaxLinkedInJobs = 200

type LinkedInJobRepository struct {
	db *gorm.DB
}

func NewLinkedInJobRepository(db *gorm.DB) *LinkedInJobRepository {
	return &LinkedInJobRepository{db}
}

func (r *LinkedInJobRepository) List(ctx context.Context) ([]model.LinkedInJob, error) {
	var jobs []model.LinkedInJob
	err := r.db.WithContext(ctx).Order("posted_at DESC").Limit(MaxLinkedInJobs).Find(&jobs).Error
	return jobs, err
}

func (r *LinkedInJobRepository) FindByID(ctx context.Context, id string) (*model.LinkedInJob, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var j model.LinkedInJob
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	return &j, err
}

func (r *LinkedInJobRepository) Search(ctx context.Context, term string) ([]model.LinkedInJob, error) {
	var jobs []model.LinkedInJob
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like, like).
		Order("posted_at DESC").
		Limit(MaxLinkedInJobs).
		Find(&jobs).Error
	return jobs, err
}

// Upsert inserts listings, refreshing existing rows matched by apply_url.
func (r *LinkedInJobRepository) Upsert(ctx context.Context, jobs []model.LinkedInJob) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "apply_url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "location", "company_name", "posted_at", "description",
			"seniority", "employment_type", "source", "recruiter_name",
			"recruiter_profile", "recruiter_profile_url", "embedding",
		}),
	}).Create(&jobs).Error
}

func (r *LinkedInJobRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.LinkedInJob, error) {
	var jobs []model.LinkedInJob

	err := r.db.WithContext(ctx).Raw(`
        SELECT *
        FROM linkedin_jobs
        WHERE embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, topK).Scan(&jobs).Error

	return jobs, err
}
