package cdt

import (
	"math/rand"
	"testing"
)

func TestPartitionedRNG_SameSubsystemIsCached(t *testing.T) {
	// GIVEN a partitioned RNG
	prng := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN the same subsystem is requested twice
	first := prng.ForSubsystem(SubsystemMoves)
	second := prng.ForSubsystem(SubsystemMoves)

	// THEN the same instance comes back, preserving stream position
	if first != second {
		t.Errorf("ForSubsystem returned distinct instances for one name")
	}
}

func TestPartitionedRNG_PointsStreamUsesMasterSeed(t *testing.T) {
	// GIVEN the points stream for seed 1234
	prng := NewPartitionedRNG(NewSimulationKey(1234))
	points := prng.ForSubsystem(SubsystemPoints)

	// THEN it matches a plain generator seeded with the master seed
	reference := rand.New(rand.NewSource(1234))
	for i := 0; i < 10; i++ {
		got, want := points.Float64(), reference.Float64()
		if got != want {
			t.Fatalf("draw %d: got %g, want %g", i, got, want)
		}
	}
}

func TestPartitionedRNG_SubsystemStreamsAreIsolated(t *testing.T) {
	// GIVEN two runs where one drains extra draws from the move stream
	run := func(extraMoveDraws int) float64 {
		prng := NewPartitionedRNG(NewSimulationKey(7))
		moves := prng.ForSubsystem(SubsystemMoves)
		for i := 0; i < extraMoveDraws; i++ {
			moves.Float64()
		}
		return prng.ForSubsystem(SubsystemMetropolis).Float64()
	}

	// THEN the metropolis stream is unaffected by the move stream's usage
	if a, b := run(0), run(100); a != b {
		t.Errorf("metropolis stream perturbed by move draws: %g vs %g", a, b)
	}
}

func TestPartitionedRNG_DifferentSeedsDiverge(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(SubsystemMoves).Int63()
	b := NewPartitionedRNG(NewSimulationKey(2)).ForSubsystem(SubsystemMoves).Int63()
	if a == b {
		t.Errorf("different master seeds produced identical first draws")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	prng := NewPartitionedRNG(NewSimulationKey(99))
	if prng.Key() != SimulationKey(99) {
		t.Errorf("Key: got %d, want 99", prng.Key())
	}
}
