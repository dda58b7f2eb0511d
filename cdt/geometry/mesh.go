package geometry

import "fmt"

// MeshBackend is a plain in-memory backend storing vertex coordinates
// and face incidence directly. It implements the full Mutator contract
// with straightforward local operations, which makes it the backend of
// choice for exercising mutation semantics in tests. Not safe for
// concurrent use.
type MeshBackend struct {
	dimension int

	coords map[VertexHandle][]float64
	faces  map[FaceHandle][3]VertexHandle

	// Insertion order, so sequence queries are deterministic.
	vertexOrder []VertexHandle
	faceOrder   []FaceHandle
}

// NewMeshBackend builds an empty 2-dimensional mesh.
func NewMeshBackend() *MeshBackend {
	return &MeshBackend{
		dimension: 2,
		coords:    make(map[VertexHandle][]float64),
		faces:     make(map[FaceHandle][3]VertexHandle),
	}
}

// NewTriangleMesh builds the minimal non-degenerate complex: a single
// triangle on (0,0), (1,0), (0,1). Its Euler characteristic is 1
// (3 vertices, 3 edges, 1 face).
func NewTriangleMesh() *MeshBackend {
	m := NewMeshBackend()
	a, _ := m.InsertVertex([]float64{0, 0})
	b, _ := m.InsertVertex([]float64{1, 0})
	c, _ := m.InsertVertex([]float64{0, 1})
	_, _ = m.AddFace(a, b, c)
	return m
}

func (m *MeshBackend) Name() string { return "mesh" }

func (m *MeshBackend) VertexCount() int { return len(m.coords) }
func (m *MeshBackend) FaceCount() int   { return len(m.faces) }
func (m *MeshBackend) Dimension() int   { return m.dimension }

func (m *MeshBackend) EdgeCount() int {
	n, err := CountEdges(m)
	if err != nil {
		return 0
	}
	return n
}

func (m *MeshBackend) Vertices() []VertexHandle {
	out := make([]VertexHandle, len(m.vertexOrder))
	copy(out, m.vertexOrder)
	return out
}

func (m *MeshBackend) Faces() []FaceHandle {
	out := make([]FaceHandle, len(m.faceOrder))
	copy(out, m.faceOrder)
	return out
}

func (m *MeshBackend) Edges() []EdgeHandle {
	edges, err := UniqueEdges(m)
	if err != nil {
		return nil
	}
	return edges
}

func (m *MeshBackend) VertexCoordinates(v VertexHandle) ([]float64, error) {
	c, ok := m.coords[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	out := make([]float64, len(c))
	copy(out, c)
	return out, nil
}

func (m *MeshBackend) FaceVertices(f FaceHandle) ([]VertexHandle, error) {
	vs, ok := m.faces[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, f)
	}
	return []VertexHandle{vs[0], vs[1], vs[2]}, nil
}

func (m *MeshBackend) EdgeEndpoints(e EdgeHandle) (VertexHandle, VertexHandle, error) {
	a := VertexHandle{id: e.lo}
	b := VertexHandle{id: e.hi}
	if _, ok := m.coords[a]; !ok {
		return VertexHandle{}, VertexHandle{}, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	if _, ok := m.coords[b]; !ok {
		return VertexHandle{}, VertexHandle{}, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	return a, b, nil
}

func (m *MeshBackend) AdjacentFaces(v VertexHandle) ([]FaceHandle, error) {
	if _, ok := m.coords[v]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	return derivedAdjacentFaces(m, v)
}

func (m *MeshBackend) IncidentEdges(v VertexHandle) ([]EdgeHandle, error) {
	if _, ok := m.coords[v]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	return derivedIncidentEdges(m, v)
}

func (m *MeshBackend) FaceNeighbors(f FaceHandle) ([]FaceHandle, error) {
	if _, ok := m.faces[f]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, f)
	}
	return derivedFaceNeighbors(m, f)
}

func (m *MeshBackend) IsValid() bool {
	if len(m.coords) == 0 || len(m.faces) == 0 {
		return false
	}
	for _, vs := range m.faces {
		if vs[0] == vs[1] || vs[1] == vs[2] || vs[0] == vs[2] {
			return false
		}
		for _, v := range vs {
			if _, ok := m.coords[v]; !ok {
				return false
			}
		}
	}
	return true
}

// InsertVertex adds a free vertex. It joins the complex once a face
// references it (AddFace, SubdivideFace).
func (m *MeshBackend) InsertVertex(coords []float64) (VertexHandle, error) {
	if len(coords) != m.dimension {
		return VertexHandle{}, fmt.Errorf("%w: want %d coordinates, got %d",
			ErrOperationFailed, m.dimension, len(coords))
	}
	v := newVertexHandle()
	c := make([]float64, len(coords))
	copy(c, coords)
	m.coords[v] = c
	m.vertexOrder = append(m.vertexOrder, v)
	return v, nil
}

// AddFace registers a triangle over three existing, distinct vertices.
func (m *MeshBackend) AddFace(a, b, c VertexHandle) (FaceHandle, error) {
	for _, v := range []VertexHandle{a, b, c} {
		if _, ok := m.coords[v]; !ok {
			return FaceHandle{}, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
		}
	}
	if a == b || b == c || a == c {
		return FaceHandle{}, fmt.Errorf("%w: degenerate face", ErrOperationFailed)
	}
	f := newFaceHandle()
	m.faces[f] = [3]VertexHandle{a, b, c}
	m.faceOrder = append(m.faceOrder, f)
	return f, nil
}

// RemoveVertex deletes a vertex and every face incident to it, and
// reports the removed faces.
func (m *MeshBackend) RemoveVertex(v VertexHandle) ([]FaceHandle, error) {
	if _, ok := m.coords[v]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	removed, err := derivedAdjacentFaces(m, v)
	if err != nil {
		return nil, err
	}
	for _, f := range removed {
		m.dropFace(f)
	}
	delete(m.coords, v)
	for i, w := range m.vertexOrder {
		if w == v {
			m.vertexOrder = append(m.vertexOrder[:i], m.vertexOrder[i+1:]...)
			break
		}
	}
	return removed, nil
}

func (m *MeshBackend) MoveVertex(v VertexHandle, coords []float64) error {
	if _, ok := m.coords[v]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, v)
	}
	if len(coords) != m.dimension {
		return fmt.Errorf("%w: want %d coordinates, got %d",
			ErrOperationFailed, m.dimension, len(coords))
	}
	c := make([]float64, len(coords))
	copy(c, coords)
	m.coords[v] = c
	return nil
}

// flipPair resolves the two faces sharing an edge and their opposite
// vertices. Fails unless the edge is interior (exactly two incident
// faces) with distinct opposite vertices.
func (m *MeshBackend) flipPair(e EdgeHandle) (faces [2]FaceHandle, opposite [2]VertexHandle, err error) {
	a := VertexHandle{id: e.lo}
	b := VertexHandle{id: e.hi}
	if _, ok := m.coords[a]; !ok {
		return faces, opposite, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	if _, ok := m.coords[b]; !ok {
		return faces, opposite, fmt.Errorf("%w: %s", ErrInvalidHandle, e)
	}
	n := 0
	for _, f := range m.faceOrder {
		vs := m.faces[f]
		var hasA, hasB bool
		var opp VertexHandle
		for _, v := range vs {
			switch v {
			case a:
				hasA = true
			case b:
				hasB = true
			default:
				opp = v
			}
		}
		if hasA && hasB {
			if n == 2 {
				return faces, opposite, fmt.Errorf("%w: edge shared by more than two faces", ErrOperationFailed)
			}
			faces[n] = f
			opposite[n] = opp
			n++
		}
	}
	if n != 2 {
		return faces, opposite, fmt.Errorf("%w: edge is not interior", ErrOperationFailed)
	}
	if opposite[0] == opposite[1] {
		return faces, opposite, fmt.Errorf("%w: flip would create a degenerate face", ErrOperationFailed)
	}
	return faces, opposite, nil
}

// CanFlipEdge reports whether FlipEdge on this edge would succeed.
func (m *MeshBackend) CanFlipEdge(e EdgeHandle) bool {
	_, _, err := m.flipPair(e)
	return err == nil
}

// FlipEdge replaces the diagonal of the quadrilateral formed by the
// edge's two incident faces: the edge (a,b) with opposite vertices
// (p,q) becomes the edge (p,q), and the two old faces become
// (p,q,a) and (p,q,b). Vertex, edge and face counts are unchanged.
func (m *MeshBackend) FlipEdge(e EdgeHandle) (FlipResult, error) {
	faces, opp, err := m.flipPair(e)
	if err != nil {
		return FlipResult{}, err
	}
	a := VertexHandle{id: e.lo}
	b := VertexHandle{id: e.hi}
	m.dropFace(faces[0])
	m.dropFace(faces[1])
	fa, err := m.AddFace(opp[0], opp[1], a)
	if err != nil {
		return FlipResult{}, err
	}
	fb, err := m.AddFace(opp[0], opp[1], b)
	if err != nil {
		return FlipResult{}, err
	}
	return FlipResult{
		NewEdge:       edgeBetween(opp[0], opp[1]),
		AffectedFaces: []FaceHandle{fa, fb},
	}, nil
}

// SubdivideFace splits a triangle into three by inserting a vertex in
// its interior. A nil point places the vertex at the centroid. Adds
// one vertex, three edges and a net two faces; the Euler
// characteristic is unchanged.
func (m *MeshBackend) SubdivideFace(f FaceHandle, point []float64) (SubdivisionResult, error) {
	vs, ok := m.faces[f]
	if !ok {
		return SubdivisionResult{}, fmt.Errorf("%w: %s", ErrInvalidHandle, f)
	}
	if point == nil {
		point = make([]float64, m.dimension)
		for _, v := range vs {
			for i, x := range m.coords[v] {
				point[i] += x / 3
			}
		}
	}
	nv, err := m.InsertVertex(point)
	if err != nil {
		return SubdivisionResult{}, err
	}
	m.dropFace(f)
	newFaces := make([]FaceHandle, 0, 3)
	for i := range vs {
		nf, err := m.AddFace(vs[i], vs[(i+1)%3], nv)
		if err != nil {
			return SubdivisionResult{}, err
		}
		newFaces = append(newFaces, nf)
	}
	return SubdivisionResult{NewVertex: nv, NewFaces: newFaces, RemovedFace: f}, nil
}

func (m *MeshBackend) Clear() {
	m.coords = make(map[VertexHandle][]float64)
	m.faces = make(map[FaceHandle][3]VertexHandle)
	m.vertexOrder = nil
	m.faceOrder = nil
}

// ReserveCapacity is advisory; map growth handles the rest.
func (m *MeshBackend) ReserveCapacity(vertices, faces int) {
	if cap(m.vertexOrder)-len(m.vertexOrder) < vertices {
		grown := make([]VertexHandle, len(m.vertexOrder), len(m.vertexOrder)+vertices)
		copy(grown, m.vertexOrder)
		m.vertexOrder = grown
	}
	if cap(m.faceOrder)-len(m.faceOrder) < faces {
		grown := make([]FaceHandle, len(m.faceOrder), len(m.faceOrder)+faces)
		copy(grown, m.faceOrder)
		m.faceOrder = grown
	}
}

func (m *MeshBackend) dropFace(f FaceHandle) {
	delete(m.faces, f)
	for i, g := range m.faceOrder {
		if g == f {
			m.faceOrder = append(m.faceOrder[:i], m.faceOrder[i+1:]...)
			return
		}
	}
}

var _ Mutator = (*MeshBackend)(nil)
