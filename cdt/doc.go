// Package cdt implements a Monte Carlo simulator for 2D causal
// dynamical triangulations: random triangulated geometries sampled by
// a Metropolis-Hastings chain weighted by the Regge action.
//
// # Reading Guide
//
// Follow a run top to bottom:
//   - run.go: RunSimulation, the wiring of seed streams, generation and the chain
//   - config.go: SimulationConfig and its validation rules
//   - triangulation.go: the Triangulation wrapper, its cache and event history
//   - action.go: the Regge action as a counting functional over simplices
//   - moves.go: ergodic move selection, attempt plumbing and statistics
//   - metropolis.go: the acceptance loop, measurements and result aggregation
//   - rng.go: PartitionedRNG, one deterministic stream per subsystem
//   - seeds.go: scanning master seeds for starting topologies
//
// Reproducibility contract: the same master seed and configuration
// produce bit-for-bit identical results. Every random draw flows from
// a named PartitionedRNG subsystem, so subsystems cannot perturb each
// other's streams.
package cdt
