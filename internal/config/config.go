// Package config loads process-level settings for an application
// embedding the event distribution core: default queue capacity,
// manager shutdown behavior, and logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds settings for constructing an eventqueue.Manager and
// the root logger an embedding application passes down through
// context.Context.
type Config struct {
	// QueueCapacity is the default capacity for queues created by
	// Manager.CreateOrTap. Must be positive.
	QueueCapacity int `yaml:"queue_capacity"`

	// CloseGraceSeconds bounds how long Manager.CloseAll waits for
	// every bound queue to finish closing before giving up. Zero
	// means wait forever (subject only to the caller's context).
	CloseGraceSeconds int `yaml:"close_grace_seconds"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// LogFormat selects the slog handler: "text" or "json".
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the settings used when no config file is
// present.
func DefaultConfig() *Config {
	return &Config{
		QueueCapacity:     1024,
		CloseGraceSeconds: 5,
		Debug:             false,
		LogFormat:         "text",
	}
}

// Load reads settings from configPath, a YAML file. An empty
// configPath defaults to ~/.config/a2acore/config.yaml. A missing
// file is not an error: Load returns DefaultConfig() unchanged.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".config", "a2acore", "config.yaml")
	}
	configPath = expandPath(configPath)

	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
