package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/repository"
	"github.com/fadilmartias/profile-scorer/internal/service"
	"github.com/fadilmartias/profile-scorer/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScorer(t *testing.T) {
	ctx := context.Background()

	scorer, err := newScorer(ctx, &config.ScorerConfig{Backend: config.ScorerBackendLocal}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &service.HeuristicScorer{}, scorer)

	scorer, err = newScorer(ctx, &config.ScorerConfig{Backend: config.ScorerBackendHTTP, APIURL: "http://localhost:9/score"}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &service.ModelService{}, scorer)

	_, err = newScorer(ctx, &config.ScorerConfig{Backend: config.ScorerBackendHTTP}, nil, nil)
	assert.ErrorContains(t, err, "MODEL_API_URL")

	scorer, err = newScorer(ctx, &config.ScorerConfig{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &service.HeuristicScorer{}, scorer)
}

func TestNewJobStore(t *testing.T) {
	store, err := newJobStore(&config.DBConfig{StoreBackend: config.StoreBackendMemory}, &config.AppConfig{})
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryJobStore{}, store)

	_, err = newJobStore(&config.DBConfig{StoreBackend: "etcd"}, &config.AppConfig{})
	assert.Error(t, err)
}

func TestNewApp_Readiness(t *testing.T) {
	runner := worker.NewJobRunner(worker.JobRunnerOptions{Workers: 1, QueueSize: 1})
	app := newApp(&config.AppConfig{Name: "test", Env: "production", RateLimitMax: 1000}, runner)

	resp, err := app.Test(httptest.NewRequest("GET", "/readyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/livez", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	runner.Shutdown(true)

	resp, err = app.Test(httptest.NewRequest("GET", "/readyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
