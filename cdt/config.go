package cdt

import (
	"fmt"

	"github.com/cdt-sim/cdt-sim/cdt/geometry"
)

// SimulationConfig is the complete description of one run. It
// round-trips through YAML for the named presets.
type SimulationConfig struct {
	// Vertices is the size of the generated point cloud.
	Vertices int `yaml:"vertices"`
	// TimeSlices is the depth of the foliation.
	TimeSlices int `yaml:"time_slices"`
	// Dimension of the triangulation. Only 2 is implemented.
	Dimension int `yaml:"dimension"`
	// Seed is the master seed; every subsystem stream derives from it.
	Seed int64 `yaml:"seed"`
	// CoordinateRange bounds the sampling window per axis.
	CoordinateRange geometry.CoordinateRange `yaml:"coordinate_range"`

	Action     ActionConfig     `yaml:"action"`
	Metropolis MetropolisConfig `yaml:"metropolis"`

	// ReportOnly generates and validates the triangulation and stops
	// before the Monte Carlo loop.
	ReportOnly bool `yaml:"report_only"`
}

// DefaultSimulationConfig matches the CLI defaults.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Vertices:        32,
		TimeSlices:      3,
		Dimension:       2,
		Seed:            42,
		CoordinateRange: geometry.DefaultCoordinateRange,
		Action:          DefaultActionConfig(),
		Metropolis:      DefaultMetropolisConfig(),
	}
}

// Validate applies every parameter constraint, dimension first so an
// unsupported dimension is reported before any derived complaint.
func (c SimulationConfig) Validate() error {
	if c.Dimension != 2 {
		return &UnsupportedDimensionError{Dimension: c.Dimension}
	}
	if c.Vertices < 3 {
		return &InvalidParametersError{
			Parameter:  "vertices",
			Value:      fmt.Sprintf("%d", c.Vertices),
			Constraint: "must be at least 3",
		}
	}
	if c.TimeSlices < 1 {
		return &InvalidParametersError{
			Parameter:  "time-slices",
			Value:      fmt.Sprintf("%d", c.TimeSlices),
			Constraint: "must be at least 1",
		}
	}
	if !(c.CoordinateRange.Min < c.CoordinateRange.Max) {
		return &InvalidParametersError{
			Parameter:  "coordinate-range",
			Value:      fmt.Sprintf("[%g,%g)", c.CoordinateRange.Min, c.CoordinateRange.Max),
			Constraint: "min must be strictly below max",
		}
	}
	if err := c.Action.Validate(); err != nil {
		return err
	}
	return c.Metropolis.Validate()
}
