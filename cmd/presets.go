package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cdt-sim/cdt-sim/cdt"
)

// Define struct for YAML
type PresetConfig struct {
	Presets map[string]cdt.SimulationConfig `yaml:"presets"`
}

// BuiltinPresets returns the named run shapes shipped with the
// binary. Each scales the point cloud and the chain length together.
func BuiltinPresets() map[string]cdt.SimulationConfig {
	small := cdt.DefaultSimulationConfig()
	small.Vertices = 16
	small.TimeSlices = 3
	small.Metropolis = cdt.MetropolisConfig{
		Temperature:          1.0,
		Steps:                10,
		ThermalizationSteps:  2,
		MeasurementFrequency: 1,
	}

	medium := cdt.DefaultSimulationConfig()
	medium.Vertices = 64
	medium.TimeSlices = 4
	medium.Metropolis = cdt.MetropolisConfig{
		Temperature:          1.0,
		Steps:                100,
		ThermalizationSteps:  20,
		MeasurementFrequency: 5,
	}

	large := cdt.DefaultSimulationConfig()
	large.Vertices = 256
	large.TimeSlices = 5
	large.Metropolis = cdt.MetropolisConfig{
		Temperature:          1.0,
		Steps:                1000,
		ThermalizationSteps:  100,
		MeasurementFrequency: 10,
	}

	return map[string]cdt.SimulationConfig{
		"small":  small,
		"medium": medium,
		"large":  large,
	}
}

// GetPresetConfig resolves a named preset. A preset file, when given,
// is consulted first and may shadow the built-in names; nil means the
// name is unknown.
func GetPresetConfig(presetFilePath string, name string) *cdt.SimulationConfig {
	if presetFilePath != "" {
		// Read YAML file
		data, err := os.ReadFile(presetFilePath)
		if err != nil {
			panic(err)
		}

		// Parse YAML
		var cfg PresetConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic(err)
		}

		if preset, presetExists := cfg.Presets[name]; presetExists {
			logrus.Infof("Using preset %v from %v\n", name, presetFilePath)
			return &preset
		}
	}

	if preset, presetExists := BuiltinPresets()[name]; presetExists {
		logrus.Infof("Using built-in preset %v\n", name)
		return &preset
	}
	return nil
}
