package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets_AllValidate(t *testing.T) {
	presets := BuiltinPresets()
	require.Len(t, presets, 3)
	for name, cfg := range presets {
		assert.NoErrorf(t, cfg.Validate(), "preset %s", name)
	}
}

func TestBuiltinPresets_ScaleTogether(t *testing.T) {
	presets := BuiltinPresets()
	small, medium, large := presets["small"], presets["medium"], presets["large"]

	assert.Equal(t, 16, small.Vertices)
	assert.Equal(t, 64, medium.Vertices)
	assert.Equal(t, 256, large.Vertices)

	assert.Less(t, small.Metropolis.Steps, medium.Metropolis.Steps)
	assert.Less(t, medium.Metropolis.Steps, large.Metropolis.Steps)
}

func TestGetPresetConfig_BuiltinName(t *testing.T) {
	cfg := GetPresetConfig("", "medium")
	require.NotNil(t, cfg)
	assert.Equal(t, 64, cfg.Vertices)
	assert.Equal(t, 100, cfg.Metropolis.Steps)
}

func TestGetPresetConfig_UnknownName(t *testing.T) {
	assert.Nil(t, GetPresetConfig("", "colossal"))
}

func TestGetPresetConfig_FileShadowsBuiltin(t *testing.T) {
	// GIVEN a preset file redefining "small"
	doc := `
presets:
  small:
    vertices: 24
    time_slices: 2
    dimension: 2
    coordinate_range:
      min: -1
      max: 1
    action:
      coupling0: 1.0
      coupling2: 1.0
      cosmological: 0.1
    metropolis:
      temperature: 1.0
      steps: 20
      thermalization_steps: 4
      measurement_frequency: 2
`
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	// WHEN the name is resolved with the file present
	cfg := GetPresetConfig(path, "small")

	// THEN the file's definition wins over the built-in
	require.NotNil(t, cfg)
	assert.Equal(t, 24, cfg.Vertices)
	assert.Equal(t, 20, cfg.Metropolis.Steps)
	assert.NoError(t, cfg.Validate())
}

func TestGetPresetConfig_FileMissingNameFallsBack(t *testing.T) {
	doc := `
presets:
  custom:
    vertices: 48
`
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := GetPresetConfig(path, "large")
	require.NotNil(t, cfg)
	assert.Equal(t, 256, cfg.Vertices)
}
