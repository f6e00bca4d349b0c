// Package config defines the application configuration structures.
//
// Settings live in ~/.ragask/config.yaml. Environment variables
// (RAGASK_BACKEND_URL, RAGASK_LOG_LEVEL, RAGASK_LOG_FILE) override the
// file, and command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// EnvPrefix is stripped from environment variables before mapping them
// onto config keys.
const EnvPrefix = "RAGASK_"

// Config holds all application settings.
type Config struct {
	Backend BackendConfig `koanf:"backend" yaml:"backend"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
}

// BackendConfig locates the question-answering backend.
type BackendConfig struct {
	// URL is the origin the client posts to, e.g. http://localhost:8000.
	URL string `koanf:"url" yaml:"url"`
}

// LogConfig controls the application log file.
type LogConfig struct {
	Level string `koanf:"level" yaml:"level"` // debug, info, warn, error
	File  string `koanf:"file" yaml:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Dir returns ~/.ragask, where the config file and logs live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ragask"), nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend url is required")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", c.Backend.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend url %q: scheme must be http or https", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend url %q: missing host", c.Backend.URL)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", c.Log.Level)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:8000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		if dir, err := Dir(); err == nil {
			cfg.Log.File = filepath.Join(dir, "logs", "app.log")
		}
	}
}
