package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	text   string
	err    error
	model  string
	prompt string
	calls  int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func newGeminiForTest(gen *fakeGenerator) *GeminiService {
	return newGeminiService(gen, &config.GeminiConfig{Model: "gemini-2.5-flash", Timeout: time.Second}, nil)
}

func TestGeminiService_Score(t *testing.T) {
	gen := &fakeGenerator{text: sampleScore}
	scorer := newGeminiForTest(gen)

	result, err := scorer.Score(context.Background(), model.ModelInput{Username: "jane-doe"})
	require.NoError(t, err)
	assert.JSONEq(t, sampleScore, string(result))
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Contains(t, gen.prompt, `"username": "jane-doe"`)
}

func TestGeminiService_StripsCodeFence(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + sampleScore + "\n```"}

	result, err := newGeminiForTest(gen).Score(context.Background(), model.ModelInput{})
	require.NoError(t, err)
	assert.JSONEq(t, sampleScore, string(result))
}

func TestGeminiService_SingleAttemptOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("503 unavailable")}

	_, err := newGeminiForTest(gen).Score(context.Background(), model.ModelInput{})
	var scoreErr *ScoreError
	require.ErrorAs(t, err, &scoreErr)
	assert.Equal(t, 1, gen.calls)
}

func TestGeminiService_InvalidPayload(t *testing.T) {
	gen := &fakeGenerator{text: `{"score":"high"}`}

	_, err := newGeminiForTest(gen).Score(context.Background(), model.ModelInput{})
	assert.ErrorContains(t, err, "invalid score payload")
}

func TestNewGeminiService_RequiresKey(t *testing.T) {
	_, err := NewGeminiService(context.Background(), &config.GeminiConfig{}, nil)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestValidateGenerateResponse(t *testing.T) {
	assert.Error(t, validateGenerateResponse(nil))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{}))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}))
}
