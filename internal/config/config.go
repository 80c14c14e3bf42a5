// Package config loads and validates esgtrack configuration.
//
// Configuration precedence, highest first: environment variables
// (ESGTRACK_* prefix), the global config file (~/.esgtrack/config.yaml),
// then built-in defaults.
package config

import "time"

// Config is the complete esgtrack configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	User    UserConfig    `mapstructure:"user" yaml:"user"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Upload  UploadConfig  `mapstructure:"upload" yaml:"upload"`
	Periods PeriodsConfig `mapstructure:"periods" yaml:"periods"`
}

// APIConfig configures the compliance platform connection.
type APIConfig struct {
	// BaseURL is the platform root URL.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Token is the bearer token for authenticated requests.
	// Prefer setting via ESGTRACK_API_TOKEN rather than the config file.
	Token string `mapstructure:"token" yaml:"token"`

	// Timeout bounds each API request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UserConfig identifies the local user.
type UserConfig struct {
	// Email is the authenticated identity; it derives the storage partition.
	Email string `mapstructure:"email" yaml:"email"`
}

// StorageConfig configures the local document store.
type StorageConfig struct {
	// Dir is the base directory for partitioned documents.
	// Empty means ~/.esgtrack/data.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// UploadConfig configures evidence uploads.
type UploadConfig struct {
	// MaxSizeMB caps upload payloads client-side before dispatch.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
}

// PeriodsConfig configures reporting-period extraction.
type PeriodsConfig struct {
	// Mode is "current" (single current month) or "window" (trailing months).
	Mode string `mapstructure:"mode" yaml:"mode"`

	// WindowMonths is the trailing window length, consulted in window mode.
	WindowMonths int `mapstructure:"window_months" yaml:"window_months"`
}

// DefaultConfig returns a Config with built-in defaults. These form the base
// layer that config files and environment variables override.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			// Timeout: 30 seconds suits the platform's small JSON payloads.
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			// Dir: empty resolves to ~/.esgtrack/data at store construction.
			Dir: "",
		},
		Upload: UploadConfig{
			// MaxSizeMB: matches the platform's documented upload limit.
			MaxSizeMB: 10,
		},
		Periods: PeriodsConfig{
			// Mode: single current month is the converged default.
			Mode:         "current",
			WindowMonths: 3,
		},
	}
}
