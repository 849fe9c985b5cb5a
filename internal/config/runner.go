package config

import (
	"log"
	"sync"

	"github.com/caarlos0/env/v11"
)

// RunnerConfig sizes the background job pool.
type RunnerConfig struct {
	MaxWorkers int `env:"MAX_WORKERS" envDefault:"4"`
	QueueSize  int `env:"RUNNER_QUEUE_SIZE" envDefault:"100"`
}

var (
	runnerConfig *RunnerConfig
	runnerOnce   sync.Once
)

func LoadRunnerConfig() *RunnerConfig {
	runnerOnce.Do(func() {
		cfg, err := ParseRunnerConfig()
		if err != nil {
			log.Printf("Warning: invalid runner config: %v", err)
		}
		runnerConfig = cfg
	})
	return runnerConfig
}

func ParseRunnerConfig() (*RunnerConfig, error) {
	cfg := &RunnerConfig{}
	err := env.Parse(cfg)
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 4
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 100
	}
	return cfg, err
}
