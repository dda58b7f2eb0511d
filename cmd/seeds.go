package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cdt-sim/cdt-sim/cdt"
	"github.com/cdt-sim/cdt-sim/cdt/geometry"
)

var (
	// CLI flags for seed scanning
	scanVertices  int   // Point cloud size per scanned seed
	scanStartSeed int64 // First seed in the scan window
	scanMaxSeeds  int   // Number of seeds to try
	scanTarget    int   // Required Euler characteristic
	scanMaxHits   int   // Stop after this many matching seeds (0 = no cap)
)

// seedsCmd scans master seeds for starting triangulations with a
// target topology, so interesting seeds can be fed back into `run`.
var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Scan master seeds for starting triangulations with a target topology",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		params := cdt.SeedScanParams{
			Vertices:        scanVertices,
			CoordinateRange: geometry.CoordinateRange{Min: coordMin, Max: coordMax},
			StartSeed:       scanStartSeed,
			MaxSeeds:        scanMaxSeeds,
			TargetEuler:     scanTarget,
			MaxHits:         scanMaxHits,
		}
		hits, err := cdt.ScanSeeds(params, logrus.StandardLogger())
		if err != nil {
			logrus.Fatalf("Seed scan failed: %v", err)
		}

		if len(hits) == 0 {
			logrus.Warnf("No seed in [%d,%d) produced Euler characteristic %d",
				scanStartSeed, scanStartSeed+int64(scanMaxSeeds), scanTarget)
			return
		}
		for _, hit := range hits {
			fmt.Printf("seed=%d vertices=%d edges=%d faces=%d euler=%d\n",
				hit.Seed, hit.Vertices, hit.Edges, hit.Faces, hit.Euler)
		}
	},
}

func init() {
	seedsCmd.Flags().IntVar(&scanVertices, "vertices", 32, "Point cloud size per scanned seed")
	seedsCmd.Flags().Int64Var(&scanStartSeed, "from", 0, "First seed in the scan window")
	seedsCmd.Flags().IntVar(&scanMaxSeeds, "count", 100, "Number of seeds to try")
	seedsCmd.Flags().IntVar(&scanTarget, "target-euler", 1, "Required Euler characteristic")
	seedsCmd.Flags().IntVar(&scanMaxHits, "max-hits", 0, "Stop after this many matching seeds (0 scans the whole window)")
	seedsCmd.Flags().Float64Var(&coordMin, "coord-min", -10, "Lower bound of the coordinate sampling window")
	seedsCmd.Flags().Float64Var(&coordMax, "coord-max", 10, "Upper bound of the coordinate sampling window")
	seedsCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(seedsCmd)
}
