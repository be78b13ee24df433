// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string        `env:"USERHUB_LISTEN" envDefault:":3000"`
	DataPath   string        `env:"USERHUB_DATA_PATH" envDefault:"./data/userhub.json"`
	JWTSecret  string        `env:"USERHUB_JWT_SECRET"`
	TokenTTL   time.Duration `env:"USERHUB_TOKEN_TTL" envDefault:"24h"`
	LogDir     string        `env:"USERHUB_LOG_DIR"`
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("USERHUB_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
