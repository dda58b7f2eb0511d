package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cdt-sim/cdt-sim/cdt"
)

var (
	// CLI flags for geometry generation
	vertices   int     // Number of vertices in the generated point cloud
	timeSlices int     // Number of time slices in the foliation
	dimension  int     // Triangulation dimension (only 2 supported)
	seed       int64   // Master seed; all subsystem RNG streams derive from it
	coordMin   float64 // Lower bound of the coordinate sampling window
	coordMax   float64 // Upper bound of the coordinate sampling window

	// CLI flags for the Regge action couplings
	coupling0    float64 // Vertex coupling
	coupling2    float64 // Face coupling
	cosmological float64 // Edge (cosmological constant) coupling

	// CLI flags for the Metropolis chain
	temperature          float64 // Ensemble temperature
	steps                int     // Total Monte Carlo steps
	thermalizationSteps  int     // Equilibration prefix excluded from observables
	measurementFrequency int     // Take a measurement every N steps

	// CLI flags for run shape
	preset     string // Named preset (small, medium, large) overriding the flags above
	presetFile string // YAML file with additional presets
	simulate   bool   // Run the chain; false reports the triangulation only
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cdt-sim",
	Short: "Monte Carlo simulator for causal dynamical triangulations",
}

// buildConfig assembles the simulation config from flags, letting a
// named preset override the numeric parameters.
func buildConfig() cdt.SimulationConfig {
	cfg := cdt.DefaultSimulationConfig()
	if preset != "" {
		loaded := GetPresetConfig(presetFile, preset)
		if loaded == nil {
			logrus.Fatalf("Unknown preset %q", preset)
		}
		cfg = *loaded
	} else {
		cfg.Vertices = vertices
		cfg.TimeSlices = timeSlices
		cfg.Dimension = dimension
		cfg.CoordinateRange.Min = coordMin
		cfg.CoordinateRange.Max = coordMax
		cfg.Action.Coupling0 = coupling0
		cfg.Action.Coupling2 = coupling2
		cfg.Action.Cosmological = cosmological
		cfg.Metropolis.Temperature = temperature
		cfg.Metropolis.Steps = steps
		cfg.Metropolis.ThermalizationSteps = thermalizationSteps
		cfg.Metropolis.MeasurementFrequency = measurementFrequency
	}
	cfg.Seed = seed
	cfg.ReportOnly = !simulate
	return cfg
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the CDT Monte Carlo simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := buildConfig()
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation with %d vertices, %d time slices, %d steps, seed=%d",
			cfg.Vertices, cfg.TimeSlices, cfg.Metropolis.Steps, cfg.Seed)

		_, _, err = cdt.RunSimulation(cfg, logrus.StandardLogger())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if cfg.ReportOnly {
			logrus.Info("Report complete.")
			return
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all RNG subsystems")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Geometry generation
	runCmd.Flags().IntVar(&vertices, "vertices", 32, "Number of vertices in the generated point cloud")
	runCmd.Flags().IntVar(&timeSlices, "timeslices", 3, "Number of time slices in the foliation")
	runCmd.Flags().IntVar(&dimension, "dimension", 2, "Triangulation dimension (only 2 is supported)")
	runCmd.Flags().Float64Var(&coordMin, "coord-min", -10, "Lower bound of the coordinate sampling window")
	runCmd.Flags().Float64Var(&coordMax, "coord-max", 10, "Upper bound of the coordinate sampling window")

	// Regge action couplings
	runCmd.Flags().Float64Var(&coupling0, "coupling-0", 1.0, "Vertex coupling of the Regge action")
	runCmd.Flags().Float64Var(&coupling2, "coupling-2", 1.0, "Face coupling of the Regge action")
	runCmd.Flags().Float64Var(&cosmological, "cosmological-constant", 0.1, "Cosmological constant (edge coupling)")

	// Metropolis chain
	runCmd.Flags().Float64Var(&temperature, "temperature", 1.0, "Ensemble temperature")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "Total Monte Carlo steps")
	runCmd.Flags().IntVar(&thermalizationSteps, "thermalization-steps", 100, "Steps excluded from equilibrium observables")
	runCmd.Flags().IntVar(&measurementFrequency, "measurement-frequency", 10, "Take a measurement every N steps")

	// Run shape
	runCmd.Flags().StringVar(&preset, "preset", "", "Named preset (small, medium, large) overriding the numeric flags")
	runCmd.Flags().StringVar(&presetFile, "preset-file", "", "YAML file with additional presets")
	runCmd.Flags().BoolVar(&simulate, "simulate", true, "Run the Monte Carlo chain; false reports the triangulation only")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
