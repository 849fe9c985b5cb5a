package config

import (
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

type RapidAPIConfig struct {
	APIKey  string        `env:"RAPIDAPI_KEY"`
	Host    string        `env:"RAPIDAPI_HOST" envDefault:"fresh-linkedin-profile-data.p.rapidapi.com"`
	BaseURL string        `env:"RAPIDAPI_BASE_URL" envDefault:"https://fresh-linkedin-profile-data.p.rapidapi.com"`
	Timeout time.Duration `env:"RAPIDAPI_TIMEOUT" envDefault:"60s"`
}

var (
	rapidAPIConfig *RapidAPIConfig
	rapidAPIOnce   sync.Once
)

func LoadRapidAPIConfig() *RapidAPIConfig {
	rapidAPIOnce.Do(func() {
		cfg := &RapidAPIConfig{}
		if err := env.Parse(cfg); err != nil {
			log.Printf("Warning: invalid RapidAPI config: %v", err)
		}
		rapidAPIConfig = cfg
	})
	return rapidAPIConfig
}
