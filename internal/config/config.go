// Package config loads and validates the dnswatch configuration.
//
// Configuration is a JSON file; the path comes from the -config flag or the
// DNSWIRE_CONFIG environment variable. Missing fields fall back to defaults
// in Validate.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// WatchConfig contains settings for the UDP capture tap.
type WatchConfig struct {
	Listen     string `json:"listen"`      // UDP address to listen on, e.g. "127.0.0.1:5353"
	BufferSize int    `json:"buffer_size"` // Receive buffer size in bytes
}

// StoreConfig contains capture store settings.
type StoreConfig struct {
	Path string `json:"path"` // SQLite database path
}

// APIConfig contains management API settings.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string            `json:"level"`
	Format      string            `json:"format"`
	IncludePID  bool              `json:"include_pid"`
	ExtraFields map[string]string `json:"extra_fields,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Watch   WatchConfig   `json:"watch"`
	Store   StoreConfig   `json:"store"`
	API     APIConfig     `json:"api"`
	Logging LoggingConfig `json:"logging"`
}

// ResolveConfigPath picks the config path from the flag value or the
// DNSWIRE_CONFIG environment variable. An empty result means defaults only.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("DNSWIRE_CONFIG")
}

// Load reads the config file at path and validates it. An empty path yields
// a validated default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Watch.Listen == "" {
		cfg.Watch.Listen = "127.0.0.1:5353"
	}
	if cfg.Watch.BufferSize <= 0 {
		cfg.Watch.BufferSize = 4096
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "dnswire.db"
	}

	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}
	return nil
}
