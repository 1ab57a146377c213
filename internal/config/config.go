// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted by Config.Backend.
const (
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendSQLite   = "sqlite"
)

// Config contains the server configuration.
type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Debug widens error payloads to full internal detail. Never enable in
	// production.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Backend selects the user store adapter: postgres, mysql, or sqlite.
	Backend     string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	DatabaseDSN string `env:"DATABASE_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"authstore.db"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// Load parses the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Backend {
	case BackendPostgres, BackendMySQL:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the %s backend", cfg.Backend)
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}

	return &cfg, nil
}
