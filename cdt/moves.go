package cdt

import (
	"fmt"
	"math/rand"
)

// MoveType enumerates the ergodic moves of 2D CDT. Together the four
// kinds connect any two foliated triangulations of the same topology.
type MoveType int

const (
	// MoveTwoTwo exchanges the diagonal of two time-like neighboring
	// triangles. Leaves all simplex counts unchanged.
	MoveTwoTwo MoveType = iota
	// MoveOneThree splits a triangle into three around a new vertex.
	MoveOneThree
	// MoveThreeOne collapses three triangles around a degree-3 vertex,
	// the inverse of MoveOneThree.
	MoveThreeOne
	// MoveEdgeFlip flips a space-like edge between adjacent slices.
	MoveEdgeFlip

	numMoveTypes = 4
)

func (m MoveType) String() string {
	switch m {
	case MoveTwoTwo:
		return "(2,2)"
	case MoveOneThree:
		return "(1,3)"
	case MoveThreeOne:
		return "(3,1)"
	case MoveEdgeFlip:
		return "edge-flip"
	default:
		return fmt.Sprintf("MoveType(%d)", int(m))
	}
}

// MoveOutcome classifies a single move attempt.
type MoveOutcome int

const (
	// MoveApplied means the move passed its preconditions and was
	// applied to the geometry.
	MoveApplied MoveOutcome = iota
	// MoveRejectedGeometry means a structural precondition failed
	// (wrong local configuration, non-flippable edge).
	MoveRejectedGeometry
	// MoveRejectedCausality means the move would have broken the
	// foliation (vertex leaving its time slice, causal edge inverted).
	MoveRejectedCausality
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveApplied:
		return "applied"
	case MoveRejectedGeometry:
		return "rejected-geometry"
	case MoveRejectedCausality:
		return "rejected-causality"
	default:
		return fmt.Sprintf("MoveOutcome(%d)", int(o))
	}
}

// MoveResult is the record of one attempt.
type MoveResult struct {
	Type    MoveType
	Outcome MoveOutcome
}

// Applied reports whether the attempt changed (or, for the current
// stubs, would have changed) the geometry.
func (r MoveResult) Applied() bool { return r.Outcome == MoveApplied }

// MoveStatistics accumulates per-kind attempt counters across a run.
type MoveStatistics struct {
	Attempted [numMoveTypes]int
	Succeeded [numMoveTypes]int
}

// Record folds one result into the counters.
func (s *MoveStatistics) Record(r MoveResult) {
	s.Attempted[r.Type]++
	if r.Applied() {
		s.Succeeded[r.Type]++
	}
}

// TotalAttempted sums attempts across move kinds.
func (s *MoveStatistics) TotalAttempted() int {
	total := 0
	for _, n := range s.Attempted {
		total += n
	}
	return total
}

// TotalSucceeded sums applied moves across move kinds.
func (s *MoveStatistics) TotalSucceeded() int {
	total := 0
	for _, n := range s.Succeeded {
		total += n
	}
	return total
}

// AcceptanceRate is applied moves over attempts for one kind, 0 when
// the kind was never attempted.
func (s *MoveStatistics) AcceptanceRate(kind MoveType) float64 {
	if s.Attempted[kind] == 0 {
		return 0
	}
	return float64(s.Succeeded[kind]) / float64(s.Attempted[kind])
}

// TotalAcceptanceRate is applied moves over attempts across all kinds,
// 0 for an empty record.
func (s *MoveStatistics) TotalAcceptanceRate() float64 {
	attempted := s.TotalAttempted()
	if attempted == 0 {
		return 0
	}
	return float64(s.TotalSucceeded()) / float64(attempted)
}

// moveSuccessProbability is the stand-in acceptance bias per move
// kind. The real preconditions differ sharply between kinds ((1,3)
// always has a target face; (3,1) needs a degree-3 vertex), and these
// biases keep run statistics in a realistic shape until the geometric
// implementations land.
func moveSuccessProbability(m MoveType) float64 {
	switch m {
	case MoveTwoTwo:
		return 0.6
	case MoveOneThree:
		return 0.8
	case MoveThreeOne:
		return 0.4
	case MoveEdgeFlip:
		return 0.7
	default:
		return 0
	}
}

// rejectionGeometrySplit is the probability that a failed attempt is a
// geometric rejection rather than a causal one.
const rejectionGeometrySplit = 0.3

// Ergodics selects and attempts ergodic moves, feeding every result
// into its statistics.
//
// The attempt bodies are stubs: they draw the outcome from the biased
// coin in moveSuccessProbability and never touch the triangulation, so
// an applied move leaves the action unchanged. The selection loop,
// statistics and result plumbing are the permanent structure the real
// moves will drop into.
type Ergodics struct {
	rng   *rand.Rand
	stats MoveStatistics
}

// NewErgodics builds a move subsystem over the given RNG, normally
// PartitionedRNG.ForSubsystem(SubsystemMoves).
func NewErgodics(rng *rand.Rand) *Ergodics {
	return &Ergodics{rng: rng}
}

// SelectRandomMove draws a move kind uniformly.
func (e *Ergodics) SelectRandomMove() MoveType {
	return MoveType(e.rng.Intn(numMoveTypes))
}

// Attempt tries one move of the given kind against the triangulation
// and records the result.
//
// TODO: implement (2,2) and edge-flip on top of Mutator.FlipEdge and
// (1,3) on SubdivideFace, replacing the coin draw per kind as each
// lands.
func (e *Ergodics) Attempt(tri *Triangulation, m MoveType) MoveResult {
	result := MoveResult{Type: m}
	if e.rng.Float64() < moveSuccessProbability(m) {
		result.Outcome = MoveApplied
	} else if e.rng.Float64() < rejectionGeometrySplit {
		result.Outcome = MoveRejectedGeometry
	} else {
		result.Outcome = MoveRejectedCausality
	}
	e.stats.Record(result)
	tri.RecordEvent(EventMoveAttempted, fmt.Sprintf("%s: %s", m, result.Outcome))
	return result
}

// Statistics returns a copy of the accumulated counters.
func (e *Ergodics) Statistics() MoveStatistics {
	return e.stats
}
