package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Missing default file is empty config", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigPath), false)
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("Missing explicit file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "turing.yaml")
		content := "max_steps: 500\nlog_level: debug\naddr: :9090\nredis:\n  addr: localhost:6379\n  prefix: tm:\n  steps: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path, true)
		require.NoError(t, err)
		assert.Equal(t, 500, cfg.MaxSteps)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, RedisConfig{Addr: "localhost:6379", Prefix: "tm:", Steps: true}, cfg.Redis)
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "turing.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"max_steps": 7, "log_format": "json"}`), 0644))

		cfg, err := LoadConfig(path, true)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.MaxSteps)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("Negative max steps", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "turing.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_steps: -1\n"), 0644))

		_, err := LoadConfig(path, true)
		assert.ErrorContains(t, err, "max_steps")
	})
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false, &Config{})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(false, &Config{LogLevel: "chatty"})
	assert.Error(t, err)

	logger, err = NewLogger(true, &Config{LogFormat: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.log")
	logger, err := NewLogger(false, &Config{LogLevel: "error", LogFile: path})
	require.NoError(t, err)

	logger.Error("machine failed", "state", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"machine failed"`)
	assert.Contains(t, string(data), `"state":3`)
}
