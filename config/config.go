// Package config persists converter defaults so recurring options (a library
// copyright string, the output suffix) don't have to be repeated on every
// invocation. Flags always win over the file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the on-disk configuration structure.
type Config struct {
	// Suffix is inserted before the extension of converted files.
	Suffix string `json:"suffix,omitempty"`
	// Copyright is injected into files that carry none.
	Copyright string `json:"copyright,omitempty"`
	// Text strings are injected as text meta messages into every file.
	Text []string `json:"text,omitempty"`
	// Jobs bounds the batch worker pool; 0 means auto.
	Jobs int `json:"jobs,omitempty"`
	// Debug enables drop diagnostics.
	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Suffix: "_modus",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midi-modus-convert"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
