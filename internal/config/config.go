// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Sandbox SandboxConfig
	Logging LogConfig
	Search  SearchConfig
}

// SandboxConfig holds the sandbox root configuration. The root is fixed
// at process start and never changes afterwards.
type SandboxConfig struct {
	Root string `envconfig:"SANDBOX_ROOT" default:"documents"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// SearchConfig bounds search and recent-file listings.
type SearchConfig struct {
	MaxMatchesPerFile int `envconfig:"SEARCH_MAX_MATCHES_PER_FILE" default:"5"`
	MaxRecentDays     int `envconfig:"RECENT_MAX_DAYS" default:"365"`
	MaxRecentLimit    int `envconfig:"RECENT_MAX_LIMIT" default:"100"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Sandbox: SandboxConfig{Root: "documents"},
		Logging: LogConfig{Level: "info", Development: false},
		Search: SearchConfig{
			MaxMatchesPerFile: 5,
			MaxRecentDays:     365,
			MaxRecentLimit:    100,
		},
	}
}
