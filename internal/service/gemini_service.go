package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/logging"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"google.golang.org/genai"
)

// contentGenerator is the part of genai.Models the scorer uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiService scores profiles with a Gemini model. Each call is a single
// attempt bounded by RequestTimeout.
type GeminiService struct {
	models         contentGenerator
	model          string
	RequestTimeout time.Duration
	logger         *slog.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *slog.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiService(client.Models, cfg, logger), nil
}

func newGeminiService(models contentGenerator, cfg *config.GeminiConfig, logger *slog.Logger) *GeminiService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &GeminiService{
		models:         models,
		model:          cfg.Model,
		RequestTimeout: timeout,
		logger:         logging.OrDefault(logger),
	}
}

func (s *GeminiService) Score(ctx context.Context, input model.ModelInput) (json.RawMessage, error) {
	profileJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, &ScoreError{Backend: "gemini", Message: "encode input", Cause: err}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	s.logger.Info("running gemini prediction", "username", input.Username, "model", s.model)
	result, err := s.models.GenerateContent(
		timeoutCtx,
		s.model,
		genai.Text(buildScorePrompt(string(profileJSON))),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, &ScoreError{Backend: "gemini", Message: "generate content failed", Cause: err}
	}
	if err := validateGenerateResponse(result); err != nil {
		return nil, &ScoreError{Backend: "gemini", Message: "invalid response", Cause: err}
	}

	text := stripCodeFence(result.Text())
	if err := validateScorePayload([]byte(text)); err != nil {
		return nil, &ScoreError{Backend: "gemini", Message: "invalid score payload", Cause: err}
	}
	return json.RawMessage(text), nil
}

func buildScorePrompt(profileJSON string) string {
	return fmt.Sprintf(`
You are an experienced technical recruiter. Score the following LinkedIn profile.

Return your answer STRICTLY in JSON format with this schema:
{
	"username": "<username from the profile>",
	"score": <float with 2 decimal places, range 0-1>,
	"label": <1 if score > 0.7 else 0>,
	"explanation": {
		"features": {
			"work_score": <float 0-15, based on tenure and company size>,
			"edu_score": <float 0-3, based on education>,
			"degree": <one of 15, 20, 25, 30 for highest degree level>
		},
		"important_factors": ["<short factor>", "..."]
	}
}

Profile:
%s
`, profileJSON)
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

// stripCodeFence removes a ```json fence some models wrap around output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
