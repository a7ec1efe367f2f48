package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.True(t, cfg.Heatmap.Enabled)
	assert.Equal(t, 10000, cfg.Heatmap.MaxEntries)
	assert.Equal(t, 0.95, cfg.Heatmap.DecayFactor)
	assert.Equal(t, 1.0, cfg.Heatmap.MinHeatScore)
	assert.Equal(t, 5*time.Minute, cfg.Heatmap.AggregationInterval)
	assert.False(t, cfg.Heatmap.Persist)
	assert.Equal(t, 1000, cfg.Events.BufferSize)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warmgate.yaml")
	content := `
server:
  port: 9000
heatmap:
  max_entries: 500
  decay_factor: 0.9
  aggregation_interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Heatmap.MaxEntries)
	assert.Equal(t, 0.9, cfg.Heatmap.DecayFactor)
	assert.Equal(t, 30*time.Second, cfg.Heatmap.AggregationInterval)

	// Absent fields keep their defaults.
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.True(t, cfg.Heatmap.Enabled)
	assert.Equal(t, 1.0, cfg.Heatmap.MinHeatScore)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warmgate.yaml")
	content := "heatmap:\n  aggregation_interval: soon\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WARMGATE_PORT", "7070")
	t.Setenv("WARMGATE_LOG_LEVEL", "debug")
	t.Setenv("WARMGATE_TRACKING_ENABLED", "false")
	t.Setenv("WARMGATE_MAX_PATTERNS", "250")
	t.Setenv("WARMGATE_DECAY_FACTOR", "0.8")
	t.Setenv("WARMGATE_MIN_HEAT_SCORE", "2.5")
	t.Setenv("WARMGATE_AGGREGATION_INTERVAL", "1m")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.False(t, cfg.Heatmap.Enabled)
	assert.Equal(t, 250, cfg.Heatmap.MaxEntries)
	assert.Equal(t, 0.8, cfg.Heatmap.DecayFactor)
	assert.Equal(t, 2.5, cfg.Heatmap.MinHeatScore)
	assert.Equal(t, time.Minute, cfg.Heatmap.AggregationInterval)
}

func TestLoadFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("WARMGATE_PORT", "not-a-port")
	t.Setenv("WARMGATE_DECAY_FACTOR", "fast")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.95, cfg.Heatmap.DecayFactor)
}
