package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/service"
	"github.com/pgvector/pgvector-go"
)

const defaultMatchCount = 5

type LinkedInJobUsecase struct {
	repo      LinkedInJobRepository
	documents DocumentRepository
	gemini    service.GeminiServiceInterface
}

func NewLinkedInJobUsecase(repo LinkedInJobRepository, documents DocumentRepository, gemini service.GeminiServiceInterface) *LinkedInJobUsecase {
	return &LinkedInJobUsecase{repo: repo, documents: documents, gemini: gemini}
}

func (uc *LinkedInJobUsecase) List(ctx context.Context) ([]model.LinkedInJob, error) {
	return uc.repo.List(ctx)
}

func (uc *LinkedInJobUsecase) Get(ctx context.Context, id string) (*model.LinkedInJob, error) {
	return uc.repo.FindByID(ctx, id)
}

// Search matches term against title, company, location and description.
// A blank term returns the whole feed.
func (uc *LinkedInJobUsecase) Search(ctx context.Context, term string) ([]model.LinkedInJob, error) {
	if strings.TrimSpace(term) == "" {
		return uc.repo.List(ctx)
	}
	return uc.repo.Search(ctx, term)
}

// Import upserts scraped listings. Listings sharing an apply url collapse to
// the last one in the batch. Listings are embedded for resume matching when
// possible; an embedding failure only skips that listing's vector.
func (uc *LinkedInJobUsecase) Import(ctx context.Context, jobs []model.LinkedInJob) (int, error) {
	valid := make([]model.LinkedInJob, 0, len(jobs))
	byURL := make(map[string]int, len(jobs))
	for _, j := range jobs {
		if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.ApplyURL) == "" {
			log.Printf("Skipping LinkedIn job without title or apply url: %q", j.Title)
			continue
		}
		if j.Source == "" {
			j.Source = "linkedin"
		}
		if uc.gemini != nil && j.Description != "" {
			emb, err := uc.gemini.GenerateEmbedding(ctx, j.Title+"\n"+j.Description)
			if err != nil {
				log.Printf("Embedding failed for LinkedIn job %q: %v", j.Title, err)
			} else {
				v := pgvector.NewVector(emb)
				j.Embedding = &v
			}
		}
		if i, ok := byURL[j.ApplyURL]; ok {
			valid[i] = j
			continue
		}
		byURL[j.ApplyURL] = len(valid)
		valid = append(valid, j)
	}
	if err := uc.repo.Upsert(ctx, valid); err != nil {
		return 0, err
	}
	return len(valid), nil
}

// MatchResume ranks listings by vector distance to a resume's extracted text.
func (uc *LinkedInJobUsecase) MatchResume(ctx context.Context, userID, documentID string, topK int) ([]model.LinkedInJob, error) {
	if uc.gemini == nil {
		return nil, fmt.Errorf("resume matching requires the Gemini service")
	}
	if topK <= 0 || topK > 50 {
		topK = defaultMatchCount
	}
	doc, err := uc.documents.FindByID(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.ResumeContent == nil || strings.TrimSpace(*doc.ResumeContent) == "" {
		return nil, newValidationError(map[string]string{"document_id": "document has no extracted resume text"})
	}
	emb, err := uc.gemini.GenerateEmbedding(ctx, *doc.ResumeContent)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}
	return uc.repo.SearchSimilar(ctx, pgvector.NewVector(emb), topK)
}
