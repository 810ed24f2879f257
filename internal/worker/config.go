// Package worker provides background job processing for the swap station
// backend.
package worker

import (
	"os"
	"strconv"
	"time"
)

// SweepConfig holds configuration for the station status refresh sweep.
type SweepConfig struct {
	// Interval is the pause between two sweeps.
	// Default: 1 minute
	Interval time.Duration

	// Concurrency is the number of stations refreshed in parallel.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for refreshing a single station.
	// Default: 10 seconds
	Timeout time.Duration
}

// DefaultSweepConfig returns the default sweep configuration.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Interval:    time.Minute,
		Concurrency: 3,
		Timeout:     10 * time.Second,
	}
}

// SweepConfigFromEnv creates a sweep configuration from environment
// variables, falling back to defaults.
func SweepConfigFromEnv() SweepConfig {
	cfg := DefaultSweepConfig()

	if v := os.Getenv("WORKER_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Interval = d
		}
	}
	if v := os.Getenv("WORKER_SWEEP_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv("WORKER_SWEEP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}
