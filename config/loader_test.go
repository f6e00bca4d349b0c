package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.NotEmpty(t, cfg.Log.File)
	})

	t.Run("file values", func(t *testing.T) {
		path := writeConfig(t, `
backend:
  url: http://rag.internal:9000
log:
  level: debug
  file: /tmp/ragask-test.log
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://rag.internal:9000", cfg.Backend.URL)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "/tmp/ragask-test.log", cfg.Log.File)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfig(t, "backend:\n  url: http://from-file:8000\n")
		t.Setenv("RAGASK_BACKEND_URL", "https://from-env.example.test")
		t.Setenv("RAGASK_LOG_LEVEL", "warn")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://from-env.example.test", cfg.Backend.URL)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "backend: [unterminated")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid url fails validation", func(t *testing.T) {
		path := writeConfig(t, "backend:\n  url: localhost:8000\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("directory path", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "backend.url", envKey("RAGASK_BACKEND_URL"))
	assert.Equal(t, "log.level", envKey("RAGASK_LOG_LEVEL"))
	assert.Equal(t, "debug", envKey("RAGASK_DEBUG"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https", mutate: func(c *Config) { c.Backend.URL = "https://rag.example.test" }},
		{name: "empty url", mutate: func(c *Config) { c.Backend.URL = "" }, wantErr: true},
		{name: "bad scheme", mutate: func(c *Config) { c.Backend.URL = "ws://rag" }, wantErr: true},
		{name: "no host", mutate: func(c *Config) { c.Backend.URL = "http://" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
