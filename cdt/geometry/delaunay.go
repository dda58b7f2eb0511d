package geometry

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// DelaunayBackend adapts the fogleman/delaunay engine to the backend
// contracts. The engine triangulates a fixed point set once; the
// adapter wraps the result in stable handles and derives everything
// else through the facet machinery.
//
// The engine has no incremental API, so the Mutator methods report
// ErrOperationFailed rather than retriangulating from scratch behind
// the caller's back. Simulations that need mutation run on MeshBackend
// seeded from a Delaunay triangulation (see GenerateRandomBackend).
type DelaunayBackend struct {
	tri *delaunay.Triangulation

	vertices []VertexHandle
	faces    []FaceHandle

	vertexIndex map[VertexHandle]int
	faceIndex   map[FaceHandle]int

	// Lazily derived edge set; nil until first use.
	edges []EdgeHandle
}

// NewDelaunayBackend triangulates the given points. At least three
// non-collinear points are required; the engine reports an error
// otherwise.
func NewDelaunayBackend(points []delaunay.Point) (*DelaunayBackend, error) {
	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("%w: point set produced no triangles", ErrOperationFailed)
	}
	b := &DelaunayBackend{
		tri:         tri,
		vertices:    make([]VertexHandle, len(tri.Points)),
		faces:       make([]FaceHandle, len(tri.Triangles)/3),
		vertexIndex: make(map[VertexHandle]int, len(tri.Points)),
		faceIndex:   make(map[FaceHandle]int, len(tri.Triangles)/3),
	}
	for i := range b.vertices {
		h := newVertexHandle()
		b.vertices[i] = h
		b.vertexIndex[h] = i
	}
	for i := range b.faces {
		h := newFaceHandle()
		b.faces[i] = h
		b.faceIndex[h] = i
	}
	return b, nil
}

func (b *DelaunayBackend) Name() string { return "delaunay" }

func (b *DelaunayBackend) VertexCount() int { return len(b.vertices) }
func (b *DelaunayBackend) FaceCount() int   { return len(b.faces) }
func (b *DelaunayBackend) Dimension() int   { return 2 }

func (b *DelaunayBackend) EdgeCount() int { return len(b.edgeSet()) }

func (b *DelaunayBackend) edgeSet() []EdgeHandle {
	if b.edges == nil {
		edges, err := UniqueEdges(b)
		if err != nil {
			return nil
		}
		b.edges = edges
	}
	return b.edges
}

func (b *DelaunayBackend) Vertices() []VertexHandle {
	out := make([]VertexHandle, len(b.vertices))
	copy(out, b.vertices)
	return out
}

func (b *DelaunayBackend) Faces() []FaceHandle {
	out := make([]FaceHandle, len(b.faces))
	copy(out, b.faces)
	return out
}

func (b *DelaunayBackend) Edges() []EdgeHandle {
	edges := b.edgeSet()
	out := make([]EdgeHandle, len(edges))
	copy(out, edges)
	return out
}

func (b *DelaunayBackend) VertexCoordinates(v VertexHandle) ([]float64, error) {
	i, ok := b.vertexIndex[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	p := b.tri.Points[i]
	return []float64{p.X, p.Y}, nil
}

func (b *DelaunayBackend) FaceVertices(f FaceHandle) ([]VertexHandle, error) {
	i, ok := b.faceIndex[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, f)
	}
	t := b.tri.Triangles[3*i : 3*i+3]
	return []VertexHandle{b.vertices[t[0]], b.vertices[t[1]], b.vertices[t[2]]}, nil
}

func (b *DelaunayBackend) EdgeEndpoints(e EdgeHandle) (VertexHandle, VertexHandle, error) {
	a := VertexHandle{id: e.lo}
	c := VertexHandle{id: e.hi}
	if _, ok := b.vertexIndex[a]; !ok {
		return VertexHandle{}, VertexHandle{}, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	if _, ok := b.vertexIndex[c]; !ok {
		return VertexHandle{}, VertexHandle{}, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	return a, c, nil
}

func (b *DelaunayBackend) AdjacentFaces(v VertexHandle) ([]FaceHandle, error) {
	if _, ok := b.vertexIndex[v]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	return derivedAdjacentFaces(b, v)
}

func (b *DelaunayBackend) IncidentEdges(v VertexHandle) ([]EdgeHandle, error) {
	if _, ok := b.vertexIndex[v]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	return derivedIncidentEdges(b, v)
}

func (b *DelaunayBackend) FaceNeighbors(f FaceHandle) ([]FaceHandle, error) {
	i, ok := b.faceIndex[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, f)
	}
	// The engine's halfedge array gives neighbors directly: halfedge
	// 3i+k pairs with a halfedge of the adjacent triangle, or -1 on
	// the hull.
	out := make([]FaceHandle, 0, 3)
	for k := 0; k < 3; k++ {
		pair := b.tri.Halfedges[3*i+k]
		if pair >= 0 {
			out = append(out, b.faces[pair/3])
		}
	}
	return out, nil
}

func (b *DelaunayBackend) IsValid() bool {
	if len(b.vertices) == 0 || len(b.faces) == 0 {
		return false
	}
	for i := 0; i < len(b.tri.Triangles); i += 3 {
		t := b.tri.Triangles[i : i+3]
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			return false
		}
		for _, idx := range t {
			if idx < 0 || idx >= len(b.vertices) {
				return false
			}
		}
	}
	return true
}

// IsDelaunay reports the empty-circumcircle property. The engine
// guarantees it by construction, and the backend accepts no mutation,
// so this reduces to structural validity.
func (b *DelaunayBackend) IsDelaunay() bool { return b.IsValid() }

func (b *DelaunayBackend) InsertVertex(coords []float64) (VertexHandle, error) {
	return VertexHandle{}, b.noMutation("InsertVertex")
}

func (b *DelaunayBackend) RemoveVertex(v VertexHandle) ([]FaceHandle, error) {
	return nil, b.noMutation("RemoveVertex")
}

func (b *DelaunayBackend) MoveVertex(v VertexHandle, coords []float64) error {
	return b.noMutation("MoveVertex")
}

func (b *DelaunayBackend) FlipEdge(e EdgeHandle) (FlipResult, error) {
	return FlipResult{}, b.noMutation("FlipEdge")
}

func (b *DelaunayBackend) CanFlipEdge(e EdgeHandle) bool { return false }

func (b *DelaunayBackend) SubdivideFace(f FaceHandle, point []float64) (SubdivisionResult, error) {
	return SubdivisionResult{}, b.noMutation("SubdivideFace")
}

func (b *DelaunayBackend) Clear() {}

func (b *DelaunayBackend) ReserveCapacity(vertices, faces int) {}

func (b *DelaunayBackend) noMutation(op string) error {
	// TODO: retriangulate-on-mutate behind a copy once a use case
	// needs Delaunay maintenance during a run.
	return fmt.Errorf("%w: %s not supported by the %s backend", ErrOperationFailed, op, b.Name())
}

var (
	_ Mutator         = (*DelaunayBackend)(nil)
	_ DelaunayChecker = (*DelaunayBackend)(nil)
)
