package cache

import "time"

// Config represents failure log configuration
type Config struct {
	// TTL is how long a recorded failure stays on record.
	// A later success for the same source clears it early.
	TTL time.Duration `yaml:"ttl"`

	// CleanupInterval interval for cleaning up expired items
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultFailureLogConfig keeps failures for two polling intervals
func DefaultFailureLogConfig(pollInterval time.Duration) Config {
	return Config{
		TTL:             2 * pollInterval,
		CleanupInterval: 2 * pollInterval,
	}
}
