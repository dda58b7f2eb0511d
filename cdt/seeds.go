package cdt

import (
	"math/rand"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cdt-sim/cdt-sim/cdt/geometry"
)

// SeedScanParams bounds a scan over master seeds looking for starting
// triangulations with a target topology.
type SeedScanParams struct {
	Vertices        int
	CoordinateRange geometry.CoordinateRange
	// StartSeed is the first seed tried; seeds are scanned in
	// increments of one.
	StartSeed int64
	// MaxSeeds caps how many seeds are tried.
	MaxSeeds int
	// TargetEuler is the Euler characteristic a seed must produce.
	TargetEuler int
	// MaxHits stops the scan after that many matches; zero scans the
	// whole window.
	MaxHits int
}

// SeedReport describes one scanned seed.
type SeedReport struct {
	Seed     int64
	Vertices int
	Edges    int
	Faces    int
	Euler    int
	Valid    bool
}

// ScanSeeds generates the starting triangulation for each seed in the
// window and reports the ones hitting the target Euler characteristic.
// Each seed uses its own point stream, so a reported seed reproduces
// the same triangulation when passed to RunSimulation.
func ScanSeeds(params SeedScanParams, log logrus.FieldLogger) ([]SeedReport, error) {
	if params.Vertices < 3 {
		return nil, &InvalidParametersError{
			Parameter:  "vertices",
			Value:      strconv.Itoa(params.Vertices),
			Constraint: "must be at least 3",
		}
	}
	if params.MaxSeeds < 1 {
		return nil, &InvalidParametersError{
			Parameter:  "max-seeds",
			Value:      strconv.Itoa(params.MaxSeeds),
			Constraint: "must be at least 1",
		}
	}

	var hits []SeedReport
	for i := 0; i < params.MaxSeeds; i++ {
		seed := params.StartSeed + int64(i)
		prng := NewPartitionedRNG(NewSimulationKey(seed))
		report, err := scanOne(params, seed, prng.ForSubsystem(SubsystemPoints))
		if err != nil {
			if log != nil {
				log.WithField("seed", seed).WithError(err).Warn("seed skipped")
			}
			continue
		}
		if report.Euler == params.TargetEuler && report.Valid {
			hits = append(hits, report)
			if log != nil {
				log.WithFields(logrus.Fields{
					"seed":  report.Seed,
					"euler": report.Euler,
					"edges": report.Edges,
				}).Info("seed matched")
			}
			if params.MaxHits > 0 && len(hits) >= params.MaxHits {
				break
			}
		}
	}
	return hits, nil
}

func scanOne(params SeedScanParams, seed int64, rng *rand.Rand) (SeedReport, error) {
	mesh, err := geometry.GenerateRandomMesh(params.Vertices, params.CoordinateRange, rng)
	if err != nil {
		return SeedReport{}, err
	}
	return SeedReport{
		Seed:     seed,
		Vertices: mesh.VertexCount(),
		Edges:    mesh.EdgeCount(),
		Faces:    mesh.FaceCount(),
		Euler:    geometry.EulerCharacteristic(mesh),
		Valid:    mesh.IsValid(),
	}, nil
}
