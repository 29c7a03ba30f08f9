// Package models defines data structures for configuration, extracted
// page signals and the analysis report.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr            = ":5000"
	DefaultFetchTimeout    = 10 * time.Second
	DefaultMaxBodyBytes    = 5 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds runtime configuration. Values come from an optional YAML
// file and are then overridden by CLI flags.
type Config struct {
	Addr            string        `yaml:"addr"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	UserAgent       string        `yaml:"user_agent"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
	RulesFile       string        `yaml:"rules_file"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config with every field set.
func DefaultConfig() *Config {
	return &Config{
		Addr:            DefaultAddr,
		FetchTimeout:    DefaultFetchTimeout,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		UserAgent:       DefaultUserAgent,
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	return nil
}
