// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all plansync data (~/.plansync)
	BaseDir string

	// Remote authority settings
	Remote RemoteConfig

	// Sync behavior settings
	Sync SyncConfig
}

// RemoteConfig holds settings for the remote plan authority.
type RemoteConfig struct {
	// BaseURL of the authority API. Empty means offline-only operation.
	BaseURL string
	// Token for bearer authentication, if the authority requires it
	Token string
	// TimeoutSeconds for each remote call (default: 15)
	TimeoutSeconds int
}

// SyncConfig holds reconciliation behavior settings.
type SyncConfig struct {
	// AutoSync triggers a background pass after each mutation (default: true)
	AutoSync bool
	// MinIntervalSeconds rate-limits mutation-triggered passes (default: 30)
	MinIntervalSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("PLANSYNC_HOME"); dir != "" {
		cfg.BaseDir = dir
	}
	if url := os.Getenv("PLANSYNC_API_URL"); url != "" {
		cfg.Remote.BaseURL = url
	}
	if token := os.Getenv("PLANSYNC_API_TOKEN"); token != "" {
		cfg.Remote.Token = token
	}
	if v := os.Getenv("PLANSYNC_AUTO_SYNC"); v != "" {
		if auto, err := strconv.ParseBool(v); err == nil {
			cfg.Sync.AutoSync = auto
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).Logs,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
