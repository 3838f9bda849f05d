package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/xprintidle/internal/config"
	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "xprintidle.toml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
display = ":1"
log_level = "debug"

[history]
enabled = true
path = "/path/to/history.db"
`)

	t.Setenv("XPRINTIDLE_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":1", cfg.Display, "Expected Display :1")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.History.Enabled, "Expected History enabled")
	assert.Equal(t, "/path/to/history.db", cfg.History.Path)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XPRINTIDLE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, "", cfg.Display, "Expected default Display to defer to $DISPLAY")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel warning")
	assert.False(t, cfg.History.Enabled, "Expected history disabled by default")
	assert.Equal(t, filepath.Join(stateDir, "xprintidle", "history.db"), cfg.History.Path)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	configPath := writeConfig(t, `
display = ":1"
`)

	t.Setenv("XPRINTIDLE_DISPLAY", ":7")
	t.Setenv("XPRINTIDLE_HISTORY_ENABLED", "true")

	cfg, err := config.Load(config.WithConfigFile(configPath))
	require.NoError(t, err)

	assert.Equal(t, ":7", cfg.Display)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadCustomEnvPrefix(t *testing.T) {
	t.Setenv("XPRINTIDLE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("IDLETEST_LOG_LEVEL", "error")

	cfg, err := config.Load(config.WithEnvPrefix("IDLETEST"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	configPath := writeConfig(t, `
This is not a valid TOML file
`)

	t.Setenv("XPRINTIDLE_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrReadConfig, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	configPath := writeConfig(t, `
log_level = "invalid"
`)

	t.Setenv("XPRINTIDLE_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidLogLevel, errors.CodeOf(err))
}

func TestValidateHistoryPath(t *testing.T) {
	cfg := &config.Config{
		LogLevel: config.DefaultLogLevel,
		History:  config.HistoryConfig{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))

	cfg.History.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestLogLevelNamesMatchLogger(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "warning", "WARN", "error"} {
		t.Setenv("XPRINTIDLE_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("XPRINTIDLE_LOG_LEVEL", name)

		cfg, err := config.Load()
		require.NoError(t, err, name)

		_, err = logger.ParseLevel(cfg.LogLevel)
		assert.NoError(t, err, name)
	}

	assert.False(t, config.LogLevel("loud").IsValid())
}
