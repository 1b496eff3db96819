// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and ROAS_* environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir holds influencers.csv, payouts.csv and tracking_data.csv.
	DataDir string `koanf:"data_dir"`

	// DefaultMinROAS is applied when a request omits min_roas.
	DefaultMinROAS float64 `koanf:"default_min_roas"`

	// TopN is the default ranking size for GET /top.
	TopN int `koanf:"top_n"`

	// MaxTopLimit caps GET /top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`

	// StrictRows fails a load on the first malformed row. When false, bad
	// rows are skipped and reported.
	StrictRows bool `koanf:"strict_rows"`

	// CacheEntries bounds the number of summary snapshots kept in memory.
	CacheEntries int `koanf:"cache_entries"`
}

// New creates a Config with defaults. The context is reserved for loaders
// that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		DataDir:        "data",
		DefaultMinROAS: 1.0,
		TopN:           10,
		MaxTopLimit:    100,
		StrictRows:     true,
		CacheEntries:   4,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.DefaultMinROAS < 0:
		return fmt.Errorf("%w: default_min_roas must be >= 0", ErrInvalidConfig)
	case c.TopN < 1:
		return fmt.Errorf("%w: top_n must be >= 1", ErrInvalidConfig)
	case c.MaxTopLimit < c.TopN:
		return fmt.Errorf("%w: max_top_limit must be >= top_n", ErrInvalidConfig)
	case c.CacheEntries < 1:
		return fmt.Errorf("%w: cache_entries must be >= 1", ErrInvalidConfig)
	}
	return nil
}
