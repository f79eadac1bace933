package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "cirf_analysis.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.InDelta(t, 0.1, cfg.Scorer.PresenceThreshold, 1e-9)
	assert.InDelta(t, 0.05, cfg.Scorer.WeakPresenceThreshold, 1e-9)
	assert.InDelta(t, 100, cfg.Scorer.DensityScale, 1e-9)

	assert.Equal(t, 50, cfg.Collect.MaxQueries)
	assert.Equal(t, 4, cfg.Collect.Concurrency)
	assert.NotEmpty(t, cfg.Collect.PrimaryTerms)
	assert.Contains(t, cfg.Collect.GeographicModifiers, "Canada")
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/cirf
scorer:
  presence_threshold: 0.2
collect:
  max_queries: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/cirf", cfg.Store.DatabaseURL)
	assert.InDelta(t, 0.2, cfg.Scorer.PresenceThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Collect.MaxQueries)

	// Untouched keys keep their defaults.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDefault_MatchesLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	def, err := Default()
	require.NoError(t, err)
	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, loaded, def)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	require.Error(t, InitLogger(LogConfig{Level: "verbose", Format: "json"}))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
