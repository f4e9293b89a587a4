package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Redmine.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Data.CacheTTL)
	assert.Contains(t, cfg.Data.DBPath, "burndown.db")
	assert.Equal(t, 0.10, cfg.Scope.HighRatio)
	assert.Equal(t, 0.03, cfg.Scope.MediumRatio)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
redmine:
  url: https://redmine.example.com
  api_key: abcd1234
  timeout: 10s
data:
  db_path: /var/lib/rd-burndown/burndown.db
  cache_ttl: 1h
scope:
  high_ratio: 0.2
  medium_ratio: 0.05
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://redmine.example.com", cfg.Redmine.URL)
	assert.Equal(t, "abcd1234", cfg.Redmine.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Redmine.Timeout)
	assert.Equal(t, "/var/lib/rd-burndown/burndown.db", cfg.Data.DBPath)
	assert.Equal(t, time.Hour, cfg.Data.CacheTTL)
	assert.Equal(t, 0.2, cfg.Scope.HighRatio)
	assert.Equal(t, 0.05, cfg.Scope.MediumRatio)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
redmine:
  url: https://file.example.com
  api_key: from-file
`)
	t.Setenv("RD_BURNDOWN_REDMINE_URL", "https://env.example.com")
	t.Setenv("RD_BURNDOWN_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Redmine.URL)
	assert.Equal(t, "from-file", cfg.Redmine.APIKey)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidThresholds(t *testing.T) {
	path := writeConfigFile(t, `
scope:
  high_ratio: 0.05
  medium_ratio: 0.2
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medium_ratio")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Data:  DataConfig{DBPath: "/tmp/b.db"},
		Scope: ScopeConfig{HighRatio: 0.1, MediumRatio: 0.03},
	}
	require.NoError(t, cfg.Validate())

	cfg.Scope.HighRatio = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Scope.HighRatio = 0.1
	cfg.Data.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRedmine(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateRedmine()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redmine.url")
	assert.Contains(t, err.Error(), "redmine.api_key")

	cfg.Redmine.URL = "https://redmine.example.com"
	cfg.Redmine.APIKey = "abcd1234"
	assert.NoError(t, cfg.ValidateRedmine())
}
