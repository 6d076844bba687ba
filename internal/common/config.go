// Package common provides shared utilities for the investment analysis service
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the service
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Derivation  DerivationConfig `toml:"derivation"`
	Logging     LoggingConfig    `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the company store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// DerivationConfig holds tunables for the metrics derivation engine.
type DerivationConfig struct {
	// ROICMAWeight is the per-period weighting factor (in percent) applied to
	// operating income in the moving-average ROIC numerator. The reference
	// analysis sheet marks this value as provisional, so it is configurable
	// rather than hard-coded.
	ROICMAWeight float64 `toml:"roic_ma_weight"`
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
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/companies",
		},
		Derivation: DerivationConfig{
			ROICMAWeight: 76.80,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
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

	if config.Derivation.ROICMAWeight <= 0 {
		config.Derivation.ROICMAWeight = 76.80
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INVEST_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("INVEST_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("INVEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("INVEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("INVEST_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if w := os.Getenv("INVEST_ROIC_MA_WEIGHT"); w != "" {
		if v, err := strconv.ParseFloat(w, 64); err == nil && v > 0 {
			config.Derivation.ROICMAWeight = v
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
