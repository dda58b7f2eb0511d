package geometry

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidHandle reports a handle used against a backend instance
// that does not recognize it. Always a programming error; never
// recovered from inside this package.
var ErrInvalidHandle = errors.New("geometry: handle not recognized by this backend")

// ErrOperationFailed reports a mutating operation whose preconditions
// were not met.
var ErrOperationFailed = errors.New("geometry: operation failed")

// VertexHandle is an opaque reference to a vertex. Comparable, usable
// as a map key, valid only for the backend that issued it.
type VertexHandle struct {
	id uuid.UUID
}

// FaceHandle is an opaque reference to a face (triangle in 2D).
type FaceHandle struct {
	id uuid.UUID
}

// EdgeHandle is an opaque reference to an edge. Edges are derived from
// face incidence (see facets.go), so the handle is the canonical pair
// of its endpoint identities rather than a freestanding id.
type EdgeHandle struct {
	lo, hi uuid.UUID
}

func newVertexHandle() VertexHandle { return VertexHandle{id: uuid.New()} }
func newFaceHandle() FaceHandle     { return FaceHandle{id: uuid.New()} }

// edgeBetween builds the canonical edge handle for an endpoint pair.
// Canonical order is bytewise on the endpoint identities, so both
// orientations of the same edge collapse to one handle.
func edgeBetween(a, b VertexHandle) EdgeHandle {
	if bytes.Compare(a.id[:], b.id[:]) <= 0 {
		return EdgeHandle{lo: a.id, hi: b.id}
	}
	return EdgeHandle{lo: b.id, hi: a.id}
}

func (h VertexHandle) String() string { return "v:" + h.id.String()[:8] }
func (h FaceHandle) String() string   { return "f:" + h.id.String()[:8] }
func (h EdgeHandle) String() string {
	return fmt.Sprintf("e:%s-%s", h.lo.String()[:8], h.hi.String()[:8])
}

// Query is the read-only capability set of a geometry backend.
//
// Sequence-returning methods (Vertices, Edges, Faces) build a fresh,
// independent slice on every call; callers may consume or retain them
// freely. Handle-resolving methods fail with ErrInvalidHandle when
// given a handle this backend did not issue.
type Query interface {
	// Name identifies the backend for logging.
	Name() string

	VertexCount() int
	// EdgeCount may be O(E): backends without a native edge store
	// derive edges from face incidence (facets.go).
	EdgeCount() int
	FaceCount() int
	Dimension() int

	Vertices() []VertexHandle
	Edges() []EdgeHandle
	Faces() []FaceHandle

	VertexCoordinates(v VertexHandle) ([]float64, error)
	FaceVertices(f FaceHandle) ([]VertexHandle, error)
	EdgeEndpoints(e EdgeHandle) (VertexHandle, VertexHandle, error)
	AdjacentFaces(v VertexHandle) ([]FaceHandle, error)
	IncidentEdges(v VertexHandle) ([]EdgeHandle, error)
	FaceNeighbors(f FaceHandle) ([]FaceHandle, error)

	// IsValid is a cheap structural sanity check: non-empty vertex and
	// face sets, faces referencing known vertices. Richer geometric
	// checks live behind DelaunayChecker.
	IsValid() bool
}

// DelaunayChecker is the optional empty-circumcircle capability.
// Backends expose it only when their scalar type supports the
// comparison; gate with a type assertion.
type DelaunayChecker interface {
	IsDelaunay() bool
}

// FlipResult reports the outcome of an edge flip.
type FlipResult struct {
	NewEdge       EdgeHandle
	AffectedFaces []FaceHandle
}

// SubdivisionResult reports the outcome of a face subdivision.
type SubdivisionResult struct {
	NewVertex   VertexHandle
	NewFaces    []FaceHandle
	RemovedFace FaceHandle
}

// Mutator is the mutating capability set. Every operation that changes
// adjacency must invalidate any cache the backend keeps over facet
// enumeration before returning.
type Mutator interface {
	Query

	InsertVertex(coords []float64) (VertexHandle, error)
	// RemoveVertex returns the faces removed along with the vertex.
	RemoveVertex(v VertexHandle) ([]FaceHandle, error)
	MoveVertex(v VertexHandle, coords []float64) error
	FlipEdge(e EdgeHandle) (FlipResult, error)
	CanFlipEdge(e EdgeHandle) bool
	SubdivideFace(f FaceHandle, point []float64) (SubdivisionResult, error)
	Clear()
	ReserveCapacity(vertices, faces int)
}

// EulerCharacteristic computes V - E + F for a backend.
func EulerCharacteristic(q Query) int {
	return q.VertexCount() - q.EdgeCount() + q.FaceCount()
}
