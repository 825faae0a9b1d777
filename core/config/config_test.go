package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests that struct tag defaults are applied.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "loot", cfg.Storage.Bucket)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "database", cfg.Restrictions.Catalog)
	assert.Equal(t, "reason", cfg.Restrictions.Match)
	assert.Equal(t, 500, cfg.Restrictions.BatchSize)
	assert.Equal(t, 300, cfg.Restrictions.CacheTTLSeconds)
	assert.True(t, cfg.Restrictions.VerifySchema)
	assert.False(t, cfg.Restrictions.ArchiveReports)
	assert.Empty(t, cfg.Restrictions.Schedule)
	assert.NoError(t, cfg.Validate())
}

// TestLoadConfig_Environment tests that environment variables override defaults.
func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RESTRICTIONS_MATCH", "exact")
	t.Setenv("RESTRICTIONS_SCHEDULE", "0 4 * * *")
	t.Setenv("RESTRICTIONS_ARCHIVE_REPORTS", "true")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "exact", cfg.Restrictions.Match)
	assert.Equal(t, "0 4 * * *", cfg.Restrictions.Schedule)
	assert.True(t, cfg.Restrictions.ArchiveReports)
	assert.False(t, cfg.Metrics.Enabled)
}

// TestLoadConfig_DotEnv tests that a .env file in the config path is loaded.
func TestLoadConfig_DotEnv(t *testing.T) {
	// Registers cleanup for the variable the .env file sets
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestConfig_Validate tests that invalid sections are reported.
func TestConfig_Validate(t *testing.T) {
	t.Setenv("RESTRICTIONS_CATALOG", "ftp")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "restrictions")
}
