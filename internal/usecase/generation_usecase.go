package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/service"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const (
	defaultTone        = "professional"
	geminiTemperature  = 0.7
	geminiOutputTokens = 8192
)

// UserRef identifies the caller of a usecase.
type UserRef struct {
	ID    string
	Email string
}

type GenerationUsecase struct {
	generations AIGenerationRepository
	documents   DocumentRepository
	settings    UserSettingRepository
	lookup      jobLookup
	gemini      service.GeminiServiceInterface
	openRouter  service.OpenRouterServiceInterface
	now         func() time.Time
}

func NewGenerationUsecase(
	generations AIGenerationRepository,
	documents DocumentRepository,
	settings UserSettingRepository,
	applications JobApplicationRepository,
	linkedIn LinkedInJobRepository,
	gemini service.GeminiServiceInterface,
	openRouter service.OpenRouterServiceInterface,
) *GenerationUsecase {
	return &GenerationUsecase{
		generations: generations,
		documents:   documents,
		settings:    settings,
		lookup:      jobLookup{applications: applications, linkedIn: linkedIn},
		gemini:      gemini,
		openRouter:  openRouter,
		now:         time.Now,
	}
}

// Generate produces resume suggestions or a cover letter with a directly
// called provider and stores the result as an AI generation.
func (uc *GenerationUsecase) Generate(ctx context.Context, user UserRef, provider, genType string, form dto.GenerationForm) (*dto.GenerationResult, error) {
	errs := map[string]string{}
	if provider != model.ProviderGemini && provider != model.ProviderOpenRouter {
		errs["provider"] = "provider must be gemini or openrouter"
	}
	if !model.IsGenerationType(genType) {
		errs["type"] = "type must be resume or cover-letter"
	}
	if len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	sel := ParseSelectedJobID(form.SelectedJobID)
	if err := uc.lookup.fillForm(ctx, user.ID, sel, &form); err != nil {
		return nil, err
	}
	if err := validateGenerationForm(form); err != nil {
		return nil, err
	}
	if form.Tone == "" {
		form.Tone = defaultTone
	}

	resume, err := uc.resumeText(ctx, user.ID, form.DocumentID)
	if err != nil {
		return nil, err
	}

	requestID := util.NewRequestID(provider, uc.now())
	log.Printf("Starting %s generation via %s: request=%s hasResume=%t", genType, provider, requestID, resume != "")

	var (
		content  string
		metadata dto.GenerationMetadata
	)
	switch provider {
	case model.ProviderGemini:
		content, err = uc.generateWithGemini(ctx, user.ID, genType, resume, form)
		metadata = analyzeContent(content)
	case model.ProviderOpenRouter:
		content, metadata, err = uc.generateWithOpenRouter(ctx, requestID, sel, genType, resume, form)
	}
	if err != nil {
		return nil, err
	}

	gen := &model.AIGeneration{
		RequestID:        requestID,
		UserID:           user.ID,
		JobApplicationID: sel.ApplicationID(),
		Type:             genType,
		Provider:         provider,
		Content:          content,
		GeneratedOn:      uc.now(),
	}
	if err := uc.generations.Create(ctx, gen); err != nil {
		return nil, fmt.Errorf("store generation: %w", err)
	}

	return &dto.GenerationResult{
		RequestID: requestID,
		Provider:  provider,
		Type:      genType,
		Content:   content,
		Metadata:  metadata,
	}, nil
}

func (uc *GenerationUsecase) resumeText(ctx context.Context, userID, documentID string) (string, error) {
	if documentID == "" {
		return "", nil
	}
	doc, err := uc.documents.FindByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newValidationError(map[string]string{"document_id": "document not found"})
		}
		return "", err
	}
	if doc.ResumeContent == nil {
		return "", nil
	}
	return strings.TrimSpace(*doc.ResumeContent), nil
}

func (uc *GenerationUsecase) geminiRequest(ctx context.Context, userID, prompt string) service.GenerateRequest {
	req := service.GenerateRequest{
		Prompt:          prompt,
		Temperature:     geminiTemperature,
		MaxOutputTokens: geminiOutputTokens,
	}
	s, err := uc.settings.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Could not load AI settings for %s, using defaults: %v", userID, err)
		}
		return req
	}
	req.APIKey = s.GeminiAPIKey
	req.Model = s.GeminiModel
	return req
}

func (uc *GenerationUsecase) generateWithGemini(ctx context.Context, userID, genType, resume string, form dto.GenerationForm) (string, error) {
	if uc.gemini == nil {
		return "", fmt.Errorf("gemini is not configured")
	}
	if genType == model.GenerationTypeCoverLetter {
		return uc.gemini.GenerateText(ctx, uc.geminiRequest(ctx, userID, coverLetterPrompt(resume, form)))
	}
	if resume != "" {
		content, err := uc.gemini.GenerateText(ctx, uc.geminiRequest(ctx, userID, resumeWithJobPrompt(resume, form)))
		if err == nil {
			return content, nil
		}
		log.Printf("Gemini resume analysis failed, falling back to job-only analysis: %v", err)
	}
	return uc.gemini.GenerateText(ctx, uc.geminiRequest(ctx, userID, jobOnlyPrompt(form)))
}

func (uc *GenerationUsecase) generateWithOpenRouter(ctx context.Context, requestID string, sel *SelectedJob, genType, resume string, form dto.GenerationForm) (string, dto.GenerationMetadata, error) {
	if uc.openRouter == nil {
		return "", dto.GenerationMetadata{}, fmt.Errorf("openrouter is not configured")
	}
	switch {
	case genType == model.GenerationTypeCoverLetter:
		content, err := uc.openRouter.Chat(ctx, openRouterCoverLetterSystem, coverLetterPrompt(resume, form))
		return content, analyzeContent(content), err
	case resume != "":
		reply, err := uc.openRouter.Chat(ctx, openRouterEnvelopePrompt(requestID, sel), openRouterResumeUserPrompt(resume, form))
		if err != nil {
			return "", dto.GenerationMetadata{}, err
		}
		content, metadata := parseEnvelope(reply)
		return content, metadata, nil
	default:
		content, err := uc.openRouter.Chat(ctx, openRouterJobOnlySystem, jobOnlyPrompt(form))
		return content, dto.GenerationMetadata{KeywordsFound: []string{}, ATSScore: 80, SuggestionsCount: 10}, err
	}
}

func analyzeContent(content string) dto.GenerationMetadata {
	return dto.GenerationMetadata{
		KeywordsFound:    util.ExtractKeywords(content),
		ATSScore:         util.ATSScore(content),
		SuggestionsCount: util.CountSuggestions(content),
	}
}

// parseEnvelope reads the flat JSON object the model was asked for. Replies
// that are not JSON, or whose content is not a string, are used verbatim.
func parseEnvelope(reply string) (string, dto.GenerationMetadata) {
	fallback := dto.GenerationMetadata{KeywordsFound: []string{}, ATSScore: 85, SuggestionsCount: 8}

	raw := stripCodeFence(reply)
	if !gjson.Valid(raw) {
		return reply, fallback
	}
	content := gjson.Get(raw, "content")
	if content.Type != gjson.String || content.String() == "" {
		return reply, fallback
	}

	meta := gjson.Get(raw, "metadata")
	if !meta.IsObject() {
		return content.String(), fallback
	}
	keywords := []string{}
	for _, k := range meta.Get("keywords_found").Array() {
		keywords = append(keywords, k.String())
	}
	return content.String(), dto.GenerationMetadata{
		KeywordsFound:    keywords,
		ATSScore:         meta.Get("ats_score").Float(),
		SuggestionsCount: int(meta.Get("suggestions_count").Int()),
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (uc *GenerationUsecase) List(ctx context.Context, userID string, q dto.ListQuery) ([]model.AIGeneration, int64, error) {
	q = q.Normalize()
	if q.Type != "" && !model.IsGenerationType(q.Type) {
		return nil, 0, newValidationError(map[string]string{"type": "type must be resume or cover-letter"})
	}
	return uc.generations.List(ctx, userID, q.Type, q.PageSize, q.Offset())
}

func (uc *GenerationUsecase) MarkUsed(ctx context.Context, userID, id string, used bool) error {
	return uc.generations.MarkUsed(ctx, userID, id, used)
}

func (uc *GenerationUsecase) Delete(ctx context.Context, userID, id string) error {
	return uc.generations.Delete(ctx, userID, id)
}

func (uc *GenerationUsecase) GetSettings(ctx context.Context, userID string) (*dto.AISettingsDTO, error) {
	s, err := uc.settings.Find(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.AISettingsDTO{AIProvider: model.ProviderGemini}, nil
	}
	if err != nil {
		return nil, err
	}
	return settingsDTO(s), nil
}

// UpdateSettings upserts the user's AI settings. An empty API key keeps the
// stored one.
func (uc *GenerationUsecase) UpdateSettings(ctx context.Context, userID string, req dto.AISettingsRequest) (*dto.AISettingsDTO, error) {
	switch req.AIProvider {
	case "", model.ProviderGemini, model.ProviderOpenRouter, model.ProviderN8n:
	default:
		return nil, newValidationError(map[string]string{"ai_provider": "ai provider must be gemini, openrouter or n8n"})
	}

	s, err := uc.settings.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		s = &model.UserSetting{UserID: userID, AIProvider: model.ProviderGemini}
	}
	if req.GeminiAPIKey != "" {
		s.GeminiAPIKey = req.GeminiAPIKey
	}
	if req.GeminiModel != "" {
		s.GeminiModel = req.GeminiModel
	}
	if req.AIProvider != "" {
		s.AIProvider = req.AIProvider
	}
	s.UpdatedAt = uc.now()
	if err := uc.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return settingsDTO(s), nil
}

func settingsDTO(s *model.UserSetting) *dto.AISettingsDTO {
	return &dto.AISettingsDTO{
		GeminiModel:     s.GeminiModel,
		AIProvider:      s.AIProvider,
		HasCustomAPIKey: s.GeminiAPIKey != "",
	}
}
