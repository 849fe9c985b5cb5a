package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":5014", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestParseAppConfig_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", ":8080")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Port)
}

func TestParseRunnerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseRunnerConfig()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.MaxWorkers)
		assert.Equal(t, 100, cfg.QueueSize)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("MAX_WORKERS", "8")
		t.Setenv("RUNNER_QUEUE_SIZE", "10")
		cfg, err := ParseRunnerConfig()
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.MaxWorkers)
		assert.Equal(t, 10, cfg.QueueSize)
	})

	t.Run("non-positive values fall back", func(t *testing.T) {
		t.Setenv("MAX_WORKERS", "0")
		t.Setenv("RUNNER_QUEUE_SIZE", "-1")
		cfg, err := ParseRunnerConfig()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.MaxWorkers)
		assert.Equal(t, 100, cfg.QueueSize)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("MAX_WORKERS", "many")
		_, err := ParseRunnerConfig()
		assert.Error(t, err)
	})
}

func TestParseScorerConfig(t *testing.T) {
	t.Setenv("SCORER_BACKEND", "gemini")
	t.Setenv("MODEL_API_TIMEOUT", "5s")

	cfg, err := ParseScorerConfig()
	require.NoError(t, err)
	assert.Equal(t, ScorerBackendGemini, cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestParseScorerConfig_UnknownBackend(t *testing.T) {
	t.Setenv("SCORER_BACKEND", "oracle")

	cfg, err := ParseScorerConfig()
	require.NoError(t, err)
	assert.Equal(t, ScorerBackendLocal, cfg.Backend)
}

func TestParseScorerConfig_DefaultsToLocal(t *testing.T) {
	t.Setenv("SCORER_BACKEND", "")

	cfg, err := ParseScorerConfig()
	require.NoError(t, err)
	assert.Equal(t, ScorerBackendLocal, cfg.Backend)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "jobs", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=jobs port=5433 sslmode=disable TimeZone=UTC", cfg.DSN())
}
