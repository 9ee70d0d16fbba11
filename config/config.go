package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/status-im/price-dashboard/cache"
)

type Config struct {
	LogLevel  string           `yaml:"log_level"`
	Dashboard DashboardFetcher `yaml:"dashboard"`

	// FailureLog keeps the last fetch failure per source for health reporting
	FailureLog cache.Config `yaml:"failure_log"`

	OverrideAPIBaseURL string `yaml:"override_api_base_url"`
}

// DefaultConfig returns a configuration that works without a config file
func DefaultConfig() *Config {
	dashboard := GetDefaultDashboardConfig()
	return &Config{
		LogLevel:   "info",
		Dashboard:  dashboard,
		FailureLog: cache.DefaultFailureLogConfig(dashboard.UpdateInterval),
	}
}

// LoadConfig reads the YAML file at path. Values missing from the file keep
// their defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("Config file not found, using defaults")
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Failure log timing follows the interval read from the file
	cfg.FailureLog = cache.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults for values explicitly zeroed in the file
func (c *Config) applyDefaults() {
	defaults := GetDefaultDashboardConfig()

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Dashboard.UpdateInterval <= 0 {
		c.Dashboard.UpdateInterval = defaults.UpdateInterval
	}
	if c.Dashboard.RequestTimeout <= 0 {
		c.Dashboard.RequestTimeout = defaults.RequestTimeout
	}
	if c.Dashboard.ConnectionTimeout <= 0 {
		c.Dashboard.ConnectionTimeout = defaults.ConnectionTimeout
	}
	if c.FailureLog.TTL <= 0 {
		c.FailureLog.TTL = 2 * c.Dashboard.UpdateInterval
	}
	if c.FailureLog.CleanupInterval <= 0 {
		c.FailureLog.CleanupInterval = c.FailureLog.TTL
	}
}
