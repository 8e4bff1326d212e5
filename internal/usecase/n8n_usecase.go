package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/config"
	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/service"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRequestTimedOut is returned by Await when no result arrived in time.
var ErrRequestTimedOut = errors.New("Request timed out. Please try again.")

const maxProgress = 95

type N8nUsecase struct {
	webhook     service.N8nServiceInterface
	tracking    N8nGenerationRepository
	generations AIGenerationRepository
	lookup      jobLookup

	interval    time.Duration
	maxAttempts int
	duration    time.Duration
	now         func() time.Time

	// watchers run on ctx until Shutdown cancels it
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewN8nUsecase(
	webhook service.N8nServiceInterface,
	tracking N8nGenerationRepository,
	generations AIGenerationRepository,
	applications JobApplicationRepository,
	linkedIn LinkedInJobRepository,
	cfg *config.N8nConfig,
) *N8nUsecase {
	ctx, cancel := context.WithCancel(context.Background())
	return &N8nUsecase{
		webhook:     webhook,
		tracking:    tracking,
		generations: generations,
		lookup:      jobLookup{applications: applications, linkedIn: linkedIn},
		interval:    cfg.PollInterval,
		maxAttempts: cfg.MaxAttempts,
		duration:    cfg.ProgressDuration,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Trigger forwards a generation request to the workflow and starts watching
// for its callback.
func (uc *N8nUsecase) Trigger(ctx context.Context, user UserRef, req dto.N8nTriggerRequest) (*dto.N8nTriggerResult, error) {
	if !model.IsGenerationType(req.Type) {
		return nil, newValidationError(map[string]string{"type": "type must be resume or cover-letter"})
	}

	form := req.Data
	sel := ParseSelectedJobID(form.SelectedJobID)
	if err := uc.lookup.fillForm(ctx, user.ID, sel, &form); err != nil {
		return nil, err
	}
	if err := validateGenerationForm(form); err != nil {
		return nil, err
	}

	now := uc.now()
	payload := dto.N8nPayload{
		Type:      req.Type,
		UserID:    user.ID,
		UserEmail: user.Email,
		RequestID: util.NewRequestID(req.Type, now),
		Timestamp: now.UTC().Format(time.RFC3339),
		Data:      normalizePayloadData(form),
	}

	log.Printf("Triggering n8n workflow: request=%s type=%s user=%s", payload.RequestID, payload.Type, user.ID)
	reply, err := uc.webhook.Trigger(ctx, payload)
	if err != nil {
		return nil, err
	}

	row := &model.N8nGeneration{
		RequestID:   payload.RequestID,
		UserID:      user.ID,
		Type:        req.Type,
		CompanyName: form.CompanyName,
		JobTitle:    form.JobTitle,
		Status:      model.GenerationStatusProcessing,
		Tone:        payload.Data.Tone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sel != nil {
		jobID := sel.ID
		row.JobID = &jobID
		row.JobType = sel.Type
	}
	if err := uc.tracking.Create(ctx, row); err != nil {
		log.Printf("Failed to store tracking row for %s: %v", payload.RequestID, err)
	}

	uc.watch(payload.RequestID)

	return &dto.N8nTriggerResult{
		RequestID:   payload.RequestID,
		N8nResponse: reply,
		PayloadSent: payload,
	}, nil
}

func normalizePayloadData(form dto.GenerationForm) dto.N8nPayloadData {
	data := dto.N8nPayloadData{
		CompanyName:        form.CompanyName,
		JobTitle:           form.JobTitle,
		JobDescription:     form.JobDescription,
		HiringManager:      form.HiringManager,
		Tone:               form.Tone,
		PersonalExperience: form.PersonalExperience,
		WhyCompany:         form.WhyCompany,
	}
	if data.Tone == "" {
		data.Tone = defaultTone
	}
	if id := strings.TrimSpace(form.SelectedJobID); id != "" && id != "null" {
		data.SelectedJobID = &id
	}
	return data
}

func (uc *N8nUsecase) watch(requestID string) {
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		_, err := uc.Await(uc.ctx, requestID)
		if !errors.Is(err, ErrRequestTimedOut) {
			return
		}
		log.Printf("n8n request %s timed out", requestID)
		if _, err := uc.tracking.MarkTimedOut(uc.ctx, requestID, ErrRequestTimedOut.Error(), uc.now()); err != nil {
			log.Printf("Failed to mark %s timed out: %v", requestID, err)
		}
	}()
}

// Await polls for the generation the workflow stores for requestID.
func (uc *N8nUsecase) Await(ctx context.Context, requestID string) (*dto.N8nResult, error) {
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		gen, err := uc.generations.FindByRequestID(ctx, requestID)
		if err == nil {
			return resultFromGeneration(gen), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Polling %s (attempt %d) failed: %v", requestID, attempt, err)
		}
		if attempt == uc.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.interval):
		}
	}
	return nil, ErrRequestTimedOut
}

// Wait is Await restricted to requests the user triggered.
func (uc *N8nUsecase) Wait(ctx context.Context, userID, requestID string) (*dto.N8nResult, error) {
	if _, err := uc.ownedRow(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return uc.Await(ctx, requestID)
}

func resultFromGeneration(gen *model.AIGeneration) *dto.N8nResult {
	res := &dto.N8nResult{
		RequestID: gen.RequestID,
		Type:      gen.Type,
		Status:    model.GenerationStatusCompleted,
		Content:   gen.Content,
	}
	if strings.HasPrefix(gen.Content, model.ErrorContentPrefix) {
		res.Status = model.GenerationStatusFailed
		res.Content = ""
		res.ErrorMessage = strings.TrimSpace(strings.TrimPrefix(gen.Content, model.ErrorContentPrefix))
	}
	return res
}

// HandleCallback records the workflow's result. A repeated callback for the
// same request returns the stored result unchanged.
func (uc *N8nUsecase) HandleCallback(ctx context.Context, cb dto.N8nCallback) (*dto.N8nResult, error) {
	if strings.TrimSpace(cb.RequestID) == "" {
		return nil, newValidationError(map[string]string{"request_id": "request_id is required"})
	}

	existing, err := uc.generations.FindByRequestID(ctx, cb.RequestID)
	if err == nil {
		return resultFromGeneration(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row, err := uc.tracking.FindByRequestID(ctx, cb.RequestID)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", cb.RequestID, err)
	}

	genType := cb.Type
	if genType == "" {
		genType = row.Type
	}
	success := cb.Status == "success" && strings.TrimSpace(cb.Content) != ""
	content := cb.Content
	errMsg := ""
	if !success {
		errMsg = cb.ErrorMessage
		if errMsg == "" {
			errMsg = "Generation failed"
		}
		content = model.ErrorContentPrefix + " " + errMsg
	}

	now := uc.now()
	gen := &model.AIGeneration{
		RequestID:        cb.RequestID,
		UserID:           row.UserID,
		JobApplicationID: callbackApplicationID(cb.JobApplicationID, row),
		Type:             genType,
		Provider:         model.ProviderN8n,
		Content:          content,
		GeneratedOn:      now,
	}
	if err := uc.generations.Create(ctx, gen); err != nil {
		// a concurrent callback for the same request won the unique index
		if stored, findErr := uc.generations.FindByRequestID(ctx, cb.RequestID); findErr == nil {
			return resultFromGeneration(stored), nil
		}
		return nil, fmt.Errorf("store generation: %w", err)
	}

	row.UpdatedAt = now
	row.CompletedAt = &now
	if success {
		row.Status = model.GenerationStatusCompleted
		row.Content = cb.Content
		applyCallbackMetadata(row, cb)
	} else {
		row.Status = model.GenerationStatusFailed
		row.ErrorMessage = errMsg
	}
	if err := uc.tracking.Update(ctx, row); err != nil {
		log.Printf("Failed to update tracking row for %s: %v", cb.RequestID, err)
	}

	log.Printf("n8n callback stored: request=%s status=%s", cb.RequestID, row.Status)
	return resultFromGeneration(gen), nil
}

// callbackApplicationID prefers the id the workflow sent ("" and "null" mean
// none) and falls back to the application selected at trigger time.
func callbackApplicationID(raw string, row *model.N8nGeneration) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw != "" && raw != "null" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	if row.JobID == nil {
		return nil
	}
	return (&SelectedJob{ID: *row.JobID, Type: row.JobType}).ApplicationID()
}

func applyCallbackMetadata(row *model.N8nGeneration, cb dto.N8nCallback) {
	if cb.Metadata == nil {
		row.Keywords = util.ExtractKeywords(cb.Content)
		row.ATSScore = util.ATSScore(cb.Content)
		row.SuggestionsCount = util.CountSuggestions(cb.Content)
		row.WordCount = util.WordCount(cb.Content)
		return
	}
	m := cb.Metadata
	row.Keywords = m.KeywordsFound
	row.ATSScore = m.ATSScore
	row.SuggestionsCount = m.SuggestionsCount
	row.WordCount = m.WordCount
	row.PersonalizationScore = m.PersonalizationScore
	if m.ToneUsed != "" {
		row.Tone = m.ToneUsed
	}
	if row.WordCount == 0 {
		row.WordCount = util.WordCount(cb.Content)
	}
}

func (uc *N8nUsecase) ownedRow(ctx context.Context, userID, requestID string) (*model.N8nGeneration, error) {
	row, err := uc.tracking.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

// Status returns the tracking row with an estimated progress.
func (uc *N8nUsecase) Status(ctx context.Context, userID, requestID string) (*dto.N8nStatusDTO, error) {
	row, err := uc.ownedRow(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	progress, remaining := estimateProgress(row, now, uc.duration)
	return &dto.N8nStatusDTO{
		Generation:    row,
		Progress:      progress,
		TimeRemaining: remaining,
		CheckedAt:     now,
	}, nil
}

func estimateProgress(row *model.N8nGeneration, now time.Time, duration time.Duration) (float64, int) {
	if row.Finished() {
		return 100, 0
	}
	elapsed := now.Sub(row.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	progress := min(float64(elapsed)/float64(duration)*100, maxProgress)
	remaining := max(duration-elapsed, 0)
	return progress, int(remaining.Seconds())
}

func (uc *N8nUsecase) List(ctx context.Context, userID, genType string) ([]model.N8nGeneration, error) {
	if genType != "" && !model.IsGenerationType(genType) {
		return nil, newValidationError(map[string]string{"type": "type must be resume or cover-letter"})
	}
	return uc.tracking.List(ctx, userID, genType)
}

// GetByJobID returns the newest run for a selected job ("app_<id>",
// "linkedin_<id>" or a bare id).
func (uc *N8nUsecase) GetByJobID(ctx context.Context, userID, selectedJobID, genType string) (*model.N8nGeneration, error) {
	sel := ParseSelectedJobID(selectedJobID)
	if sel == nil {
		return nil, newValidationError(map[string]string{"job_id": "job_id is required"})
	}
	return uc.tracking.FindByJobID(ctx, userID, sel.ID, genType)
}

// Shutdown stops the background watchers and waits for them to exit.
func (uc *N8nUsecase) Shutdown(ctx context.Context) error {
	uc.cancel()
	done := make(chan struct{})
	go func() {
		uc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
