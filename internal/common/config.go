// Package common provides shared utilities for riskfolio
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for riskfolio
type Config struct {
	Environment string        `toml:"environment"`
	API         APIConfig     `toml:"api"`
	Sync        SyncConfig    `toml:"sync"`
	Logging     LoggingConfig `toml:"logging"`
}

// APIConfig holds the Axioma Risk API connection settings
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"` // requests per second
}

// GetTimeout parses and returns the HTTP timeout duration.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SyncConfig holds position synchronization settings
type SyncConfig struct {
	ChunkSize int `toml:"chunk_size"` // max positions per patch call
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		API: APIConfig{
			BaseURL:   "https://api.axioma-risk.example.com/api/v1",
			Timeout:   "30s",
			RateLimit: 5,
		},
		Sync: SyncConfig{
			ChunkSize: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RISKFOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if url := os.Getenv("RISKFOLIO_API_URL"); url != "" {
		config.API.BaseURL = url
	}

	if key := os.Getenv("RISKFOLIO_API_KEY"); key != "" {
		config.API.APIKey = key
	}

	if limit := os.Getenv("RISKFOLIO_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			config.API.RateLimit = n
		}
	}

	if level := os.Getenv("RISKFOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
