package geometry

import (
	"fmt"
	"math/rand"

	"github.com/fogleman/delaunay"
)

// CoordinateRange bounds the uniform sampling window for generated
// points, applied to every axis.
type CoordinateRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultCoordinateRange matches the window used by the CLI defaults.
var DefaultCoordinateRange = CoordinateRange{Min: -10, Max: 10}

// GenerationParamsError reports a rejected generation parameter before
// any sampling happens.
type GenerationParamsError struct {
	Issue    string
	Provided string
	Expected string
}

func (e *GenerationParamsError) Error() string {
	return fmt.Sprintf("invalid generation parameters: %s (provided %s, expected %s)",
		e.Issue, e.Provided, e.Expected)
}

// GenerationError reports a triangulation attempt that failed after
// parameter validation passed.
type GenerationError struct {
	VertexCount int
	Range       CoordinateRange
	Attempt     int
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("triangulation of %d vertices in [%g,%g) failed on attempt %d: %v",
		e.VertexCount, e.Range.Min, e.Range.Max, e.Attempt, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// maxGenerationAttempts bounds the resampling loop. A uniform sample
// of three or more points is degenerate only with measure zero, so a
// handful of retries is already generous.
const maxGenerationAttempts = 5

func validateGeneration(vertices int, r CoordinateRange) error {
	if vertices < 3 {
		return &GenerationParamsError{
			Issue:    "too few vertices for a triangulation",
			Provided: fmt.Sprintf("%d", vertices),
			Expected: "at least 3",
		}
	}
	if !(r.Min < r.Max) {
		return &GenerationParamsError{
			Issue:    "empty coordinate range",
			Provided: fmt.Sprintf("[%g,%g)", r.Min, r.Max),
			Expected: "min strictly below max",
		}
	}
	return nil
}

func samplePoints(vertices int, r CoordinateRange, rng *rand.Rand) []delaunay.Point {
	span := r.Max - r.Min
	points := make([]delaunay.Point, vertices)
	for i := range points {
		points[i] = delaunay.Point{
			X: r.Min + span*rng.Float64(),
			Y: r.Min + span*rng.Float64(),
		}
	}
	return points
}

// GenerateRandomDelaunay samples vertices uniformly in the range and
// triangulates them, resampling on the (vanishingly rare) degenerate
// draw. The result is immutable; use GenerateRandomMesh when the
// caller needs the Mutator contract.
func GenerateRandomDelaunay(vertices int, r CoordinateRange, rng *rand.Rand) (*DelaunayBackend, error) {
	if err := validateGeneration(vertices, r); err != nil {
		return nil, err
	}
	var lastErr error
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		b, err := NewDelaunayBackend(samplePoints(vertices, r, rng))
		if err == nil {
			return b, nil
		}
		lastErr = &GenerationError{VertexCount: vertices, Range: r, Attempt: attempt, Err: err}
	}
	return nil, lastErr
}

// GenerateRandomMesh generates a Delaunay triangulation and copies it
// into a MeshBackend, trading the empty-circumcircle guarantee for a
// working Mutator contract.
func GenerateRandomMesh(vertices int, r CoordinateRange, rng *rand.Rand) (*MeshBackend, error) {
	d, err := GenerateRandomDelaunay(vertices, r, rng)
	if err != nil {
		return nil, err
	}
	return CopyToMesh(d)
}

// CopyToMesh rebuilds any backend's complex inside a fresh
// MeshBackend. Handles are re-issued; only coordinates and incidence
// carry over.
func CopyToMesh(q Query) (*MeshBackend, error) {
	m := NewMeshBackend()
	m.ReserveCapacity(q.VertexCount(), q.FaceCount())
	remap := make(map[VertexHandle]VertexHandle, q.VertexCount())
	for _, v := range q.Vertices() {
		coords, err := q.VertexCoordinates(v)
		if err != nil {
			return nil, err
		}
		nv, err := m.InsertVertex(coords)
		if err != nil {
			return nil, err
		}
		remap[v] = nv
	}
	for _, f := range q.Faces() {
		vs, err := q.FaceVertices(f)
		if err != nil {
			return nil, err
		}
		if len(vs) != 3 {
			return nil, fmt.Errorf("%w: face %s has %d vertices", ErrOperationFailed, f, len(vs))
		}
		if _, err := m.AddFace(remap[vs[0]], remap[vs[1]], remap[vs[2]]); err != nil {
			return nil, err
		}
	}
	return m, nil
}
