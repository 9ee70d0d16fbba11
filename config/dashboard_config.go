package config

import (
	"fmt"
	"time"
)

// DashboardFetcher configures polling of the price API
type DashboardFetcher struct {
	// UpdateInterval is the polling cadence for both endpoints
	UpdateInterval time.Duration `yaml:"update_interval"`

	// RequestTimeout is the total request timeout including reading the response
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ConnectionTimeout is the timeout for establishing a connection
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// Outbound rate limit. Zero disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`

	// DisplayTimezone is an IANA zone name used for chart and clock labels.
	// Empty means the process local zone.
	DisplayTimezone string `yaml:"display_timezone"`
}

// GetDefaultDashboardConfig returns default polling configuration
func GetDefaultDashboardConfig() DashboardFetcher {
	return DashboardFetcher{
		UpdateInterval:    30 * time.Second,
		RequestTimeout:    30 * time.Second,
		ConnectionTimeout: 10 * time.Second,
	}
}

// Location resolves DisplayTimezone
func (d DashboardFetcher) Location() (*time.Location, error) {
	if d.DisplayTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display_timezone %q: %w", d.DisplayTimezone, err)
	}
	return loc, nil
}
