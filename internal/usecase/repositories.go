package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/pgvector/pgvector-go"
)

// The gorm repositories satisfy these; tests swap in in-memory fakes.

type JobApplicationRepository interface {
	Create(ctx context.Context, app *model.JobApplication) error
	Update(ctx context.Context, app *model.JobApplication) error
	Delete(ctx context.Context, userID, id string) error
	FindByID(ctx context.Context, userID, id string) (*model.JobApplication, error)
	List(ctx context.Context, userID, status string, limit, offset int) ([]model.JobApplication, int64, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	FindByID(ctx context.Context, userID, id string) (*model.Document, error)
	List(ctx context.Context, userID string) ([]model.Document, error)
	Delete(ctx context.Context, userID, id string) error
}

type AIGenerationRepository interface {
	Create(ctx context.Context, gen *model.AIGeneration) error
	FindByRequestID(ctx context.Context, requestID string) (*model.AIGeneration, error)
	List(ctx context.Context, userID, genType string, limit, offset int) ([]model.AIGeneration, int64, error)
	MarkUsed(ctx context.Context, userID, id string, used bool) error
	Delete(ctx context.Context, userID, id string) error
}

type N8nGenerationRepository interface {
	Create(ctx context.Context, gen *model.N8nGeneration) error
	Update(ctx context.Context, gen *model.N8nGeneration) error
	MarkTimedOut(ctx context.Context, requestID, message string, at time.Time) (bool, error)
	FindByRequestID(ctx context.Context, requestID string) (*model.N8nGeneration, error)
	FindByJobID(ctx context.Context, userID, jobID, genType string) (*model.N8nGeneration, error)
	List(ctx context.Context, userID, genType string) ([]model.N8nGeneration, error)
}

type LinkedInJobRepository interface {
	List(ctx context.Context) ([]model.LinkedInJob, error)
	FindByID(ctx context.Context, id string) (*model.LinkedInJob, error)
	Search(ctx context.Context, term string) ([]model.LinkedInJob, error)
	Upsert(ctx context.Context, jobs []model.LinkedInJob) error
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.LinkedInJob, error)
}

type UserSettingRepository interface {
	Find(ctx context.Context, userID string) (*model.UserSetting, error)
	Upsert(ctx context.Context, s *model.UserSetting) error
}
