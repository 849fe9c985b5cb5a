package config

import (
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	Name      string `env:"APP_NAME" envDefault:"profile-scorer"`
	Env       string `env:"APP_ENV"`
	Port      string `env:"APP_PORT" envDefault:":5014"`
	BaseURL   string `env:"APP_URL"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RateLimitMax          int           `env:"RATE_LIMIT_MAX" envDefault:"50"`
	RateLimitWindow       time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	SubmitRateLimitMax    int           `env:"SUBMIT_RATE_LIMIT_MAX" envDefault:"10"`
	SubmitRateLimitWindow time.Duration `env:"SUBMIT_RATE_LIMIT_WINDOW" envDefault:"1m"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		cfg, err := ParseAppConfig()
		if err != nil {
			log.Printf("Warning: invalid app config: %v", err)
		}
		appConfig = cfg
	})
	return appConfig
}

// ParseAppConfig reads the app config from the environment without caching it.
func ParseAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	err := env.Parse(cfg)
	if cfg.Env == "" {
		cfg.Env = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", cfg.Env)
	}
	return cfg, err
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
