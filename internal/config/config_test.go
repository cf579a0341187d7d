package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.BaseDir)
	assert.Empty(t, cfg.Remote.BaseURL)
	assert.Equal(t, 15, cfg.Remote.TimeoutSeconds)
	assert.True(t, cfg.Sync.AutoSync)
	assert.Equal(t, 30, cfg.Sync.MinIntervalSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("PLANSYNC_HOME", tmp)
	t.Setenv("PLANSYNC_API_URL", "https://api.example.com")
	t.Setenv("PLANSYNC_API_TOKEN", "secret")
	t.Setenv("PLANSYNC_AUTO_SYNC", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, tmp, cfg.BaseDir)
	assert.Equal(t, "https://api.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "secret", cfg.Remote.Token)
	assert.False(t, cfg.Sync.AutoSync)

	// Load creates the data and log directories
	assert.DirExists(t, GetPaths(cfg).Logs)
}

func TestLoadIgnoresInvalidAutoSync(t *testing.T) {
	t.Setenv("PLANSYNC_HOME", t.TempDir())
	t.Setenv("PLANSYNC_AUTO_SYNC", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Sync.AutoSync)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data/plansync"}
	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/data/plansync", "plansync.db"), paths.Database)
	assert.Equal(t, filepath.Join("/data/plansync", "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join("/data/plansync", "logs"), paths.Logs)
}
