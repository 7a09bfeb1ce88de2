// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig selects the AI provider. Environment variables take precedence.
type LLMConfig struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model.
	Model string `yaml:"model"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// Config represents curanostics configuration options.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG data dir.
	DBPath string `yaml:"db_path"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile is where logs are written. Empty means the XDG state dir.
	LogFile string `yaml:"log_file"`

	// PatientName overrides the display name of the mock patient.
	PatientName string `yaml:"patient_name"`

	LLM LLMConfig `yaml:"llm"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LLM: LLMConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads configuration from path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default value.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "gemini", "openrouter", "mock":
	default:
		return fmt.Errorf("invalid llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// ResolveDBPath applies the database path precedence: the flag value, then
// CURANOSTICS_DB, then the config file. It returns "" when none is set.
func (c *Config) ResolveDBPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv("CURANOSTICS_DB"); p != "" {
		return p
	}
	return c.DBPath
}

// DefaultPath returns $XDG_CONFIG_HOME/curanostics/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "curanostics", "config.yaml"), nil
}
