package config

import (
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

type GeminiConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"90s"`
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		cfg := &GeminiConfig{}
		if err := env.Parse(cfg); err != nil {
			log.Printf("Warning: invalid Gemini config: %v", err)
		}
		geminiConfig = cfg
	})
	return geminiConfig
}
