package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScore = `{"username":"jane-doe","score":0.83,"label":1,"explanation":{"features":{"work_score":11.5,"edu_score":2.0,"degree":25},"important_factors":["Advanced degree"]}}`

func TestModelService_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var input model.ModelInput
		assert.NoError(t, json.Unmarshal(body, &input))
		assert.Equal(t, "jane-doe", input.Username)

		_, _ = w.Write([]byte(sampleScore))
	}))
	defer server.Close()

	scorer := NewModelService(&config.ScorerConfig{APIURL: server.URL + "/predict", Timeout: time.Second}, nil)
	result, err := scorer.Score(context.Background(), model.ModelInput{Username: "jane-doe"})
	require.NoError(t, err)
	assert.JSONEq(t, sampleScore, string(result))
}

func TestModelService_ScoreFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server error", status: http.StatusBadGateway, body: `{}`, wantMsg: "status 502"},
		{name: "not json", status: http.StatusOK, body: `oops`, wantMsg: "not valid JSON"},
		{name: "missing score", status: http.StatusOK, body: `{"label":1,"explanation":{}}`, wantMsg: "missing numeric score"},
		{name: "missing label", status: http.StatusOK, body: `{"score":0.5,"explanation":{}}`, wantMsg: "missing label"},
		{name: "missing explanation", status: http.StatusOK, body: `{"score":0.5,"label":0}`, wantMsg: "missing explanation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			scorer := NewModelService(&config.ScorerConfig{APIURL: server.URL, Timeout: time.Second}, nil)
			_, err := scorer.Score(context.Background(), model.ModelInput{})

			var scoreErr *ScoreError
			require.ErrorAs(t, err, &scoreErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestModelService_MissingURL(t *testing.T) {
	scorer := NewModelService(&config.ScorerConfig{Timeout: time.Second}, nil)
	_, err := scorer.Score(context.Background(), model.ModelInput{})
	assert.ErrorContains(t, err, "MODEL_API_URL not set")
}

func TestHeuristicScorer_Score(t *testing.T) {
	input := model.ModelInput{
		Username:    "jane-doe",
		Connections: 900,
		WorkedAt: []model.WorkedAt{
			{CompanyName: "Acme", StaffCountRange: "1001-5000", CompanyIndustry: "Software", Title: "Engineering Manager", Years: 6},
			{CompanyName: "Initech", Title: "Engineer", Years: 4},
		},
		StudiedAt: []model.StudiedAt{{SchoolName: "MIT", DegreeLevel: "Master of Science"}},
	}

	raw, err := NewHeuristicScorer().Score(context.Background(), input)
	require.NoError(t, err)
	require.NoError(t, validateScorePayload(raw))

	var result heuristicResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "jane-doe", result.Username)
	assert.Equal(t, 10.0, result.Explanation.Features.WorkScore)
	assert.Equal(t, 1.0, result.Explanation.Features.EduScore)
	assert.Equal(t, 25, result.Explanation.Features.Degree)
	assert.GreaterOrEqual(t, result.Score, 0.5)
	assert.LessOrEqual(t, result.Score, 0.99)
	assert.ElementsMatch(t, []string{
		"Worked at large companies",
		"Strong professional network",
		"Relevant industry experience",
		"Advanced degree",
		"Leadership positions",
	}, result.Explanation.ImportantFactors)

	again, err := NewHeuristicScorer().Score(context.Background(), input)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again), "scores are deterministic")
}

func TestHeuristicScorer_EmptyProfile(t *testing.T) {
	raw, err := NewHeuristicScorer().Score(context.Background(), model.ModelInput{Username: "nobody"})
	require.NoError(t, err)

	var result heuristicResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, 0, result.Label)
	assert.Equal(t, 15, result.Explanation.Features.Degree)
	assert.NotNil(t, result.Explanation.ImportantFactors)
}

func TestHeuristicScorer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHeuristicScorer().Score(ctx, model.ModelInput{})
	assert.ErrorIs(t, err, context.Canceled)
}
