package state

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/steviee/go-byond/internal/byond"
	"github.com/steviee/go-byond/internal/centcom"
	"github.com/steviee/go-byond/internal/httpx"
)

// Config represents the user configuration for go-byond.
type Config struct {
	Byond   ByondConfig   `yaml:"byond" mapstructure:"byond"`
	CentCom CentComConfig `yaml:"centcom" mapstructure:"centcom"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ByondConfig holds the BYOND members directory settings.
type ByondConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// CentComConfig holds the CentCom ban database settings.
type CentComConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig holds settings shared by every outgoing request.
type HTTPConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a Config with the default endpoints and timeouts.
func DefaultConfig() *Config {
	return &Config{
		Byond: ByondConfig{
			BaseURL: byond.DefaultBaseURL,
		},
		CentCom: CentComConfig{
			BaseURL: centcom.DefaultBaseURL,
		},
		HTTP: HTTPConfig{
			ConnectTimeout: httpx.DefaultConnectTimeout,
			Timeout:        httpx.DefaultTimeout,
			UserAgent:      httpx.UserAgent,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ByondClientConfig returns the members directory client configuration.
func (c *Config) ByondClientConfig() *byond.Config {
	return &byond.Config{
		BaseURL:        c.Byond.BaseURL,
		ConnectTimeout: c.HTTP.ConnectTimeout,
		Timeout:        c.HTTP.Timeout,
		UserAgent:      c.HTTP.UserAgent,
	}
}

// CentComClientConfig returns the CentCom client configuration.
func (c *Config) CentComClientConfig() *centcom.Config {
	return &centcom.Config{
		BaseURL:        c.CentCom.BaseURL,
		ConnectTimeout: c.HTTP.ConnectTimeout,
		Timeout:        c.HTTP.Timeout,
		UserAgent:      c.HTTP.UserAgent,
	}
}

// LoadConfig reads the configuration file at path, or the default path when
// path is empty. Values missing from the file keep their defaults, and a
// missing file yields DefaultConfig.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path (or the default path) atomically. An
// existing file is kept as a .bak copy.
func SaveConfig(ctx context.Context, cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := AtomicWriteWithBackup(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateBaseURL(cfg.Byond.BaseURL); err != nil {
		return fmt.Errorf("invalid byond base URL: %w", err)
	}

	if err := ValidateBaseURL(cfg.CentCom.BaseURL); err != nil {
		return fmt.Errorf("invalid centcom base URL: %w", err)
	}

	if cfg.HTTP.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be > 0, got %v", cfg.HTTP.ConnectTimeout)
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", cfg.HTTP.Timeout)
	}

	if cfg.HTTP.ConnectTimeout > cfg.HTTP.Timeout {
		return fmt.Errorf("connect timeout %v exceeds timeout %v", cfg.HTTP.ConnectTimeout, cfg.HTTP.Timeout)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}

	return nil
}
