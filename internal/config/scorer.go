package config

import (
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ScorerBackendHTTP   = "http"
	ScorerBackendGemini = "gemini"
	ScorerBackendLocal  = "local"
)

type ScorerConfig struct {
	Backend string        `env:"SCORER_BACKEND" envDefault:"local"`
	APIURL  string        `env:"MODEL_API_URL"`
	Timeout time.Duration `env:"MODEL_API_TIMEOUT" envDefault:"30s"`
}

var (
	scorerConfig *ScorerConfig
	scorerOnce   sync.Once
)

func LoadScorerConfig() *ScorerConfig {
	scorerOnce.Do(func() {
		cfg, err := ParseScorerConfig()
		if err != nil {
			log.Printf("Warning: invalid scorer config: %v", err)
		}
		scorerConfig = cfg
	})
	return scorerConfig
}

func ParseScorerConfig() (*ScorerConfig, error) {
	cfg := &ScorerConfig{}
	err := env.Parse(cfg)
	switch cfg.Backend {
	case ScorerBackendHTTP, ScorerBackendGemini, ScorerBackendLocal:
	default:
		log.Printf("Warning: unknown SCORER_BACKEND %q, defaulting to %s", cfg.Backend, ScorerBackendLocal)
		cfg.Backend = ScorerBackendLocal
	}
	return cfg, err
}
