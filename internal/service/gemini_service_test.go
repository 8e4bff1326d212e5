package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGemini() *GeminiService {
	return &GeminiService{
		MaxRetries:        2,
		BaseDelay:         time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		RequestTimeout:    time.Second,
		circuitBreakerMax: 2,
	}
}

func TestCalculateBackoffIsCapped(t *testing.T) {
	s := &GeminiService{BaseDelay: time.Second, MaxDelay: 4 * time.Second}
	assert.Equal(t, time.Second, s.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, s.calculateBackoff(2))
	assert.Equal(t, 4*time.Second, s.calculateBackoff(5))
}

func TestIsRetryableError(t *testing.T) {
	s := newTestGemini()
	assert.False(t, s.isRetryableError(nil))
	assert.False(t, s.isRetryableError(context.Canceled))
	assert.True(t, s.isRetryableError(errors.New("read: connection reset by peer")))
	assert.True(t, s.isRetryableError(errors.New("unexpected EOF")))
	assert.False(t, s.isRetryableError(errors.New("permission denied")))
}

func TestWithRetryRecoversFromTransientError(t *testing.T) {
	s := newTestGemini()
	calls := 0
	err := s.withRetry(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	n, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 0, n)
	assert.False(t, open)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	s := newTestGemini()
	calls := 0
	err := s.withRetry(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryOpensCircuit(t *testing.T) {
	s := newTestGemini()
	for i := 0; i < 2; i++ {
		_ = s.withRetry(context.Background(), "op", func(context.Context) error {
			return errors.New("timeout talking to upstream")
		})
	}
	_, open := s.GetCircuitBreakerStatus()
	assert.True(t, open)
	require.Error(t, s.checkCircuit())

	s.ResetCircuitBreaker()
	require.NoError(t, s.checkCircuit())
}

func TestGenerateTextValidatesInput(t *testing.T) {
	s := newTestGemini()
	_, err := s.GenerateText(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)

	s.DefaultModel = "gemini-2.0-flash"
	_, err = s.GenerateText(context.Background(), GenerateRequest{Prompt: "   "})
	require.Error(t, err)
}

func TestValidateGenerateResponse(t *testing.T) {
	s := newTestGemini()
	assert.Error(t, s.validateGenerateResponse(nil))
	assert.Error(t, s.validateGenerateResponse(&genai.GenerateContentResponse{}))
	assert.Error(t, s.validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}))
	assert.NoError(t, s.validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("ok", genai.RoleModel)}},
	}))
}

func TestValidateEmbeddingResponse(t *testing.T) {
	s := newTestGemini()
	_, err := s.validateEmbeddingResponse(&genai.EmbedContentResponse{})
	assert.Error(t, err)

	_, err = s.validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{1, float32(math.NaN())}}},
	})
	assert.Error(t, err)

	vals, err := s.validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vals)
}
