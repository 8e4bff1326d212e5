package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type fakeApplicationRepo struct {
	apps map[string]*model.JobApplication
}

func newFakeApplicationRepo(apps ...*model.JobApplication) *fakeApplicationRepo {
	r := &fakeApplicationRepo{apps: map[string]*model.JobApplication{}}
	for _, a := range apps {
		r.apps[a.ID.String()] = a
	}
	return r
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *model.JobApplication) error {
	app.ID = uuid.New()
	r.apps[app.ID.String()] = app
	return nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *model.JobApplication) error {
	r.apps[app.ID.String()] = app
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, userID, id string) error {
	app, ok := r.apps[id]
	if !ok || app.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, userID, id string) (*model.JobApplication, error) {
	app, ok := r.apps[id]
	if !ok || app.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *app
	return &cp, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, userID, status string, limit, offset int) ([]model.JobApplication, int64, error) {
	var out []model.JobApplication
	for _, a := range r.apps {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, *a)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := min(offset+limit, len(out))
	return out[offset:end], total, nil
}

type fakeDocumentRepo struct {
	docs map[string]*model.Document
}

func newFakeDocumentRepo(docs ...*model.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{docs: map[string]*model.Document{}}
	for _, d := range docs {
		r.docs[d.ID.String()] = d
	}
	return r
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	r.docs[doc.ID.String()] = doc
	return nil
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, userID, id string) (*model.Document, error) {
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, userID string) ([]model.Document, error) {
	var out []model.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, userID, id string) error {
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.docs, id)
	return nil
}

type fakeAIGenerationRepo struct {
	mu   sync.Mutex
	gens []*model.AIGeneration
}

func (r *fakeAIGenerationRepo) Create(_ context.Context, gen *model.AIGeneration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gen.ID = uuid.New()
	r.gens = append(r.gens, gen)
	return nil
}

func (r *fakeAIGenerationRepo) FindByRequestID(_ context.Context, requestID string) (*model.AIGeneration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gens {
		if g.RequestID == requestID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAIGenerationRepo) List(_ context.Context, userID, genType string, limit, offset int) ([]model.AIGeneration, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AIGeneration
	for _, g := range r.gens {
		if g.UserID == userID && (genType == "" || g.Type == genType) {
			out = append(out, *g)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAIGenerationRepo) MarkUsed(_ context.Context, userID, id string, used bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gens {
		if g.ID.String() == id && g.UserID == userID {
			g.IsUsed = used
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAIGenerationRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, g := range r.gens {
		if g.ID.String() == id && g.UserID == userID {
			r.gens = append(r.gens[:i], r.gens[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAIGenerationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gens)
}

type fakeN8nRepo struct {
	mu   sync.Mutex
	rows map[string]*model.N8nGeneration
}

func newFakeN8nRepo() *fakeN8nRepo {
	return &fakeN8nRepo{rows: map[string]*model.N8nGeneration{}}
}

func (r *fakeN8nRepo) Create(_ context.Context, gen *model.N8nGeneration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gen.ID = uuid.New()
	cp := *gen
	r.rows[gen.RequestID] = &cp
	return nil
}

func (r *fakeN8nRepo) Update(_ context.Context, gen *model.N8nGeneration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *gen
	r.rows[gen.RequestID] = &cp
	return nil
}

func (r *fakeN8nRepo) MarkTimedOut(_ context.Context, requestID, message string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[requestID]
	if !ok || row.Status != model.GenerationStatusProcessing {
		return false, nil
	}
	row.Status = model.GenerationStatusTimedOut
	row.ErrorMessage = message
	row.UpdatedAt = at
	row.CompletedAt = &at
	return true, nil
}

func (r *fakeN8nRepo) FindByRequestID(_ context.Context, requestID string) (*model.N8nGeneration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeN8nRepo) FindByJobID(_ context.Context, userID, jobID, genType string) (*model.N8nGeneration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && row.JobID != nil && *row.JobID == jobID && (genType == "" || row.Type == genType) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeN8nRepo) List(_ context.Context, userID, genType string) ([]model.N8nGeneration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.N8nGeneration
	for _, row := range r.rows {
		if row.UserID == userID && (genType == "" || row.Type == genType) {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeLinkedInRepo struct {
	jobs     []model.LinkedInJob
	upserted []model.LinkedInJob
	lastTopK int
}

func (r *fakeLinkedInRepo) List(context.Context) ([]model.LinkedInJob, error) {
	return r.jobs, nil
}

func (r *fakeLinkedInRepo) FindByID(_ context.Context, id string) (*model.LinkedInJob, error) {
	for i := range r.jobs {
		if r.jobs[i].ID.String() == id {
			return &r.jobs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLinkedInRepo) Search(_ context.Context, term string) ([]model.LinkedInJob, error) {
	term = strings.ToLower(term)
	var out []model.LinkedInJob
	for _, j := range r.jobs {
		if strings.Contains(strings.ToLower(j.Title+" "+j.CompanyName), term) {
			out = append(out, j)
		}
	}
	return out, nil
}

// Upsert rejects a batch that hits one apply_url twice, as ON CONFLICT DO
// UPDATE does in Postgres.
func (r *fakeLinkedInRepo) Upsert(_ context.Context, jobs []model.LinkedInJob) error {
	seen := map[string]bool{}
	for _, j := range jobs {
		if seen[j.ApplyURL] {
			return errors.New("ON CONFLICT DO UPDATE command cannot affect row a second time")
		}
		seen[j.ApplyURL] = true
	}
	r.upserted = append(r.upserted, jobs...)
	return nil
}

func (r *fakeLinkedInRepo) SearchSimilar(_ context.Context, _ pgvector.Vector, topK int) ([]model.LinkedInJob, error) {
	r.lastTopK = topK
	if topK > len(r.jobs) {
		topK = len(r.jobs)
	}
	return r.jobs[:topK], nil
}

type fakeSettingRepo struct {
	settings map[string]*model.UserSetting
}

func newFakeSettingRepo(settings ...*model.UserSetting) *fakeSettingRepo {
	r := &fakeSettingRepo{settings: map[string]*model.UserSetting{}}
	for _, s := range settings {
		r.settings[s.UserID] = s
	}
	return r
}

func (r *fakeSettingRepo) Find(_ context.Context, userID string) (*model.UserSetting, error) {
	s, ok := r.settings[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingRepo) Upsert(_ context.Context, s *model.UserSetting) error {
	cp := *s
	r.settings[s.UserID] = &cp
	return nil
}

// fakeGemini answers GenerateText with reply, or fails calls whose prompt
// contains failOn.
type fakeGemini struct {
	reply     string
	failOn    string
	err       error
	embedding []float32
	requests  []service.GenerateRequest
}

func (f *fakeGemini) GenerateText(_ context.Context, req service.GenerateRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil && (f.failOn == "" || strings.Contains(req.Prompt, f.failOn)) {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGemini) GenerateEmbedding(context.Context, string) ([]float32, error) {
	if f.embedding == nil {
		return nil, f.err
	}
	return f.embedding, nil
}

type fakeOpenRouter struct {
	reply   string
	err     error
	systems []string
	users   []string
}

func (f *fakeOpenRouter) Chat(_ context.Context, system, user string) (string, error) {
	f.systems = append(f.systems, system)
	f.users = append(f.users, user)
	return f.reply, f.err
}

type fakeWebhook struct {
	mu       sync.Mutex
	reply    string
	err      error
	payloads []dto.N8nPayload
}

func (f *fakeWebhook) Trigger(_ context.Context, payload dto.N8nPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.reply, f.err
}
