// Package config provides centralized configuration management for the
// application. Values come from an optional YAML file, environment
// variables prefixed with RD_BURNDOWN, and built-in defaults, in that
// order of increasing precedence for the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Redmine RedmineConfig
	Data    DataConfig
	Scope   ScopeConfig
	Logging LoggingConfig
}

// RedmineConfig holds tracker connection settings.
type RedmineConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// DataConfig holds local storage settings.
type DataConfig struct {
	DBPath   string
	CacheTTL time.Duration
}

// ScopeConfig holds scope change classification thresholds, expressed
// as ratios of the day's total scope.
type ScopeConfig struct {
	HighRatio   float64
	MediumRatio float64
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from the given file (or the default location
// when path is empty), then overlays environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RD_BURNDOWN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			// A missing default file is fine; defaults and env apply.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		Redmine: RedmineConfig{
			URL:     v.GetString("redmine.url"),
			APIKey:  v.GetString("redmine.api_key"),
			Timeout: v.GetDuration("redmine.timeout"),
		},
		Data: DataConfig{
			DBPath:   v.GetString("data.db_path"),
			CacheTTL: v.GetDuration("data.cache_ttl"),
		},
		Scope: ScopeConfig{
			HighRatio:   v.GetFloat64("scope.high_ratio"),
			MediumRatio: v.GetFloat64("scope.medium_ratio"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Connection settings are checked lazily
// by the commands that need them, so read-only commands work offline.
func (c *Config) Validate() error {
	if c.Scope.HighRatio <= 0 || c.Scope.HighRatio >= 1 {
		return fmt.Errorf("scope.high_ratio must be in (0, 1), got %g", c.Scope.HighRatio)
	}
	if c.Scope.MediumRatio <= 0 || c.Scope.MediumRatio >= c.Scope.HighRatio {
		return fmt.Errorf("scope.medium_ratio must be in (0, high_ratio), got %g", c.Scope.MediumRatio)
	}
	if c.Data.DBPath == "" {
		return fmt.Errorf("data.db_path must not be empty")
	}
	return nil
}

// ValidateRedmine checks that tracker connection settings are present.
func (c *Config) ValidateRedmine() error {
	var missing []string
	if c.Redmine.URL == "" {
		missing = append(missing, "redmine.url")
	}
	if c.Redmine.APIKey == "" {
		missing = append(missing, "redmine.api_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("redmine.timeout", 30*time.Second)
	v.SetDefault("data.db_path", filepath.Join(defaultConfigDir(), "burndown.db"))
	v.SetDefault("data.cache_ttl", 24*time.Hour)
	v.SetDefault("scope.high_ratio", 0.10)
	v.SetDefault("scope.medium_ratio", 0.03)
	v.SetDefault("logging.level", "info")
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rd-burndown"
	}
	return filepath.Join(home, ".rd-burndown")
}
