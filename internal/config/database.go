package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

type DBConfig struct {
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT" envDefault:"5432"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASSWORD"`
	Name         string `env:"DB_NAME"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisURL    string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisJobTTL time.Duration `env:"REDIS_JOB_TTL" envDefault:"0s"`
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		cfg := &DBConfig{}
		if err := env.Parse(cfg); err != nil {
			log.Printf("Warning: invalid database config: %v", err)
		}
		dbConfig = cfg
	})
	return dbConfig
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
	)
}
