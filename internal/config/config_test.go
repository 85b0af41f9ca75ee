package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mm", cfg.Scene.Units)
	assert.True(t, cfg.Scene.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.Scene.WatchDebounce)
	assert.Equal(t, 0.005, cfg.Tracking.FeatureTolerance)
	assert.Equal(t, 10.0, cfg.Tracking.PlaneAngleTolerance)
	assert.Equal(t, 100, cfg.Render.AnchorWarnThreshold)
	assert.Equal(t, 1400, cfg.Window.Width)
	assert.Equal(t, 0.001, cfg.UnitScale())
	assert.InDelta(t, math.Pi/18, cfg.PlaneAngleRadians(), 1e-12)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "armeasure.yaml")
	content := `
logLevel: debug
scene:
  units: cm
  watchDebounce: 2s
tracking:
  featureTolerance: 0.02
window:
  width: 800
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.01, cfg.UnitScale())
	assert.Equal(t, 2*time.Second, cfg.Scene.WatchDebounce)
	assert.Equal(t, 0.02, cfg.Tracking.FeatureTolerance)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 900, cfg.Window.Height)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/armeasure.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ARMEASURE_LOGLEVEL", "warn")
	t.Setenv("ARMEASURE_SCENE_UNITS", "m")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 1.0, cfg.UnitScale())
}

func TestLoad_FlagOverride(t *testing.T) {
	t.Setenv("ARMEASURE_SCENE_UNITS", "cm")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("units", "mm", "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--units", "m"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "m", cfg.Scene.Units)
}

func TestLoad_InvalidUnits(t *testing.T) {
	t.Setenv("ARMEASURE_SCENE_UNITS", "furlong")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "furlong")
}
