// Package settings resolves the effective configuration from defaults,
// the config file, and GOBYOND_* environment variables through viper.
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/steviee/go-byond/internal/state"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// GOBYOND_HTTP_TIMEOUT=10s.
const EnvPrefix = "GOBYOND"

// Viper keys.
const (
	KeyByondBaseURL       = "byond.base_url"
	KeyCentComBaseURL     = "centcom.base_url"
	KeyHTTPConnectTimeout = "http.connect_timeout"
	KeyHTTPTimeout        = "http.timeout"
	KeyHTTPUserAgent      = "http.user_agent"
	KeyLoggingLevel       = "logging.level"
)

// Configure registers defaults and environment handling on v.
func Configure(v *viper.Viper) {
	defaults := state.DefaultConfig()

	v.SetDefault(KeyByondBaseURL, defaults.Byond.BaseURL)
	v.SetDefault(KeyCentComBaseURL, defaults.CentCom.BaseURL)
	v.SetDefault(KeyHTTPConnectTimeout, defaults.HTTP.ConnectTimeout)
	v.SetDefault(KeyHTTPTimeout, defaults.HTTP.Timeout)
	v.SetDefault(KeyHTTPUserAgent, defaults.HTTP.UserAgent)
	v.SetDefault(KeyLoggingLevel, defaults.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load returns the validated configuration held by v.
func Load(v *viper.Viper) (*state.Config, error) {
	cfg := state.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := state.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Current returns the configuration held by the global viper instance.
func Current() (*state.Config, error) {
	return Load(viper.GetViper())
}
