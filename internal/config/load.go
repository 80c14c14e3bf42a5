package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/verdantiq/esgtrack/internal/errors"
)

// newViperInstance creates a Viper instance with standard esgtrack setup:
// ESGTRACK_ env prefix, key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ESGTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the yaml tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "30s")

	v.SetDefault("user.email", "")

	v.SetDefault("storage.dir", "")

	v.SetDefault("upload.max_size_mb", 10)

	v.SetDefault("periods.mode", "current")
	v.SetDefault("periods.window_months", 3)
}

// isConfigNotFoundError reports whether err is viper's missing-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration from all available sources with proper
// precedence, highest first: environment variables, the global config file,
// built-in defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := newViperInstance()

	if path, ok := globalConfigPathIfExists(); ok {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	return unmarshalAndValidate(v)
}

// LoadFromPath loads configuration from a specific file, mainly for tests.
func LoadFromPath(path string) (*Config, error) {
	v := newViperInstance()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config: %s", path)
		}
	}
	return unmarshalAndValidate(v)
}

// unmarshalAndValidate decodes the viper state into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// globalConfigPathIfExists returns the global config path when it exists.
func globalConfigPathIfExists() (string, bool) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// viperDecoderOption configures mapstructure to parse time.Duration strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
