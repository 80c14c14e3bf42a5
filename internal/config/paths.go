package config

import (
	"os"
	"path/filepath"

	"github.com/verdantiq/esgtrack/internal/errors"
)

// esgtrackHome is the dot-directory under the user's home.
const esgtrackHome = ".esgtrack"

// GlobalConfigDir returns the esgtrack configuration directory,
// typically ~/.esgtrack on Unix systems.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, esgtrackHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.esgtrack/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StorageDir resolves the local document store directory, honoring the
// configured override and defaulting to ~/.esgtrack/data.
func StorageDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Storage.Dir != "" {
		return cfg.Storage.Dir, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// LogFilePath returns the rotating log file location,
// typically ~/.esgtrack/logs/esgtrack.log.
func LogFilePath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "esgtrack.log"), nil
}
