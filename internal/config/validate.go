package config

import (
	"github.com/verdantiq/esgtrack/internal/errors"
)

// Validate checks configuration values for internal consistency.
// An empty API base URL is allowed here; commands that need the platform
// reject it at the point of use so offline commands keep working.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	if cfg.API.Timeout <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "api.timeout must be positive")
	}

	if cfg.Upload.MaxSizeMB <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "upload.max_size_mb must be positive")
	}

	switch cfg.Periods.Mode {
	case "current", "window":
	default:
		return errors.Wrapf(errors.ErrInvalidPeriodMode, "periods.mode '%s'", cfg.Periods.Mode)
	}

	if cfg.Periods.Mode == "window" && cfg.Periods.WindowMonths < 1 {
		return errors.Wrap(errors.ErrConfigInvalid, "periods.window_months must be at least 1")
	}

	return nil
}
