package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/loopcourse/search"
)

func TestDefaultConfigHasConsoleInfoLogging(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Nil(t, cfg.Activities)
}

func TestLoadFromNonExistentReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromValidDocumentOverridesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: debug
  format: json

ingest:
  idConcurrency: 4
  bbox:
    minLat: 39.5
    maxLat: 40.5
    minLng: -105.5
    maxLng: -104.5

corridor:
  allowNameChanges: true
  maxSpeedDifferenceKMH: 20

search:
  beamWidth: 50
  maxAlternatives: 5

activities:
  running:
    weights:
      flow: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Ingest.IDConcurrency)
	assert.False(t, cfg.Ingest.BBox.MinLat == 0 && cfg.Ingest.BBox.MaxLat == 0)
	assert.True(t, cfg.Corridor.AllowNameChanges)
	assert.Equal(t, 20.0, cfg.Corridor.MaxSpeedDifferenceKMH)
	assert.Equal(t, 50, cfg.Search.BeamWidth)
	assert.Equal(t, 5, cfg.Search.MaxAlternatives)
	require.Contains(t, cfg.Activities, "running")
	require.NotNil(t, cfg.Activities["running"].Weights)
	require.NotNil(t, cfg.Activities["running"].Weights.Flow)
	assert.Equal(t, 0.5, *cfg.Activities["running"].Weights.Flow)
}

func TestLoadFromMalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [this is not a mapping"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveToRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Search.BeamWidth = 75

	require.NoError(t, SaveTo(cfg, path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Logging.Level, loaded.Logging.Level)
	assert.Equal(t, cfg.Search.BeamWidth, loaded.Search.BeamWidth)
}

func TestCorridorConfigToOptionsFallsBackToDefaults(t *testing.T) {
	opt := CorridorConfig{}.ToOptions()
	assert.Equal(t, 45.0, opt.ChainBuild.MaxAngleChangeDegrees)
	assert.Equal(t, 15.0, opt.Compat.MaxSpeedDifferenceKMH)
}

func TestSearchConfigApplyToLeavesUnsetFieldsAlone(t *testing.T) {
	base := search.Options{}.WithDefaults()
	applied := SearchConfig{BeamWidth: 10}.ApplyTo(base)
	assert.Equal(t, 10, applied.BeamWidth)
	assert.Equal(t, base.MaxAlternatives, applied.MaxAlternatives)
}
