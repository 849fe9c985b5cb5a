package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/logging"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ProfileScorer turns a mapped profile into an opaque score payload.
type ProfileScorer interface {
	Score(ctx context.Context, input model.ModelInput) (json.RawMessage, error)
}

// ModelService posts the model input to a remote scoring API.
type ModelService struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewModelService(cfg *config.ScorerConfig, logger *slog.Logger) *ModelService {
	return &ModelService{
		client: resty.New().SetTimeout(cfg.Timeout),
		url:    cfg.APIURL,
		logger: logging.OrDefault(logger),
	}
}

func (s *ModelService) Score(ctx context.Context, input model.ModelInput) (json.RawMessage, error) {
	if s.url == "" {
		return nil, &ScoreError{Backend: "model api", Message: "MODEL_API_URL not set"}
	}
	s.logger.Info("running model prediction", "username", input.Username)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		Post(s.url)
	if err != nil {
		return nil, &ScoreError{Backend: "model api", Message: "request failed", Cause: err}
	}
	if resp.IsError() {
		return nil, &ScoreError{Backend: "model api", StatusCode: resp.StatusCode(), Message: "unexpected response status"}
	}

	body := resp.Body()
	if err := validateScorePayload(body); err != nil {
		return nil, &ScoreError{Backend: "model api", Message: "invalid response", Cause: err}
	}
	return append(json.RawMessage(nil), body...), nil
}

// validateScorePayload checks the fields every score result must carry.
func validateScorePayload(body []byte) error {
	if !gjson.ValidBytes(body) {
		return errors.New("response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return errors.New("response is not a JSON object")
	}
	if score := root.Get("score"); score.Type != gjson.Number {
		return errors.New("missing numeric score")
	}
	if !root.Get("label").Exists() {
		return errors.New("missing label")
	}
	if !root.Get("explanation").IsObject() {
		return errors.New("missing explanation")
	}
	return nil
}
