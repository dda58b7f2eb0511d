package geometry

import (
	"math/rand"
	"testing"
)

// squareMesh builds a unit square split along the a-c diagonal:
// 4 vertices, 5 edges, 2 faces.
func squareMesh(t testing.TB) (*MeshBackend, [4]VertexHandle) {
	t.Helper()
	m := NewMeshBackend()
	a, _ := m.InsertVertex([]float64{0, 0})
	b, _ := m.InsertVertex([]float64{1, 0})
	c, _ := m.InsertVertex([]float64{1, 1})
	d, _ := m.InsertVertex([]float64{0, 1})
	if _, err := m.AddFace(a, b, c); err != nil {
		t.Fatalf("AddFace(a,b,c): %v", err)
	}
	if _, err := m.AddFace(a, c, d); err != nil {
		t.Fatalf("AddFace(a,c,d): %v", err)
	}
	return m, [4]VertexHandle{a, b, c, d}
}

func TestEnumerateFacets_SingleTriangle_ThreeFacets(t *testing.T) {
	// GIVEN a single-triangle mesh
	m := NewTriangleMesh()

	// WHEN facets are enumerated
	facets, err := EnumerateFacets(m)
	if err != nil {
		t.Fatalf("EnumerateFacets: %v", err)
	}

	// THEN there is one facet per omitted vertex
	if len(facets) != 3 {
		t.Errorf("facet count: got %d, want 3", len(facets))
	}
}

func TestUniqueEdges_SharedEdgeCountedOnce(t *testing.T) {
	// GIVEN two triangles sharing one edge
	m, _ := squareMesh(t)

	// WHEN the edge set is derived
	edges, err := UniqueEdges(m)
	if err != nil {
		t.Fatalf("UniqueEdges: %v", err)
	}

	// THEN the shared diagonal is deduplicated: 6 facets, 5 edges
	if len(edges) != 5 {
		t.Errorf("edge count: got %d, want 5", len(edges))
	}
}

func TestDedupFacets_FirstSeenOrder(t *testing.T) {
	// GIVEN a facet list where edge (a,b) occurs before and after (b,c)
	m := NewTriangleMesh()
	vs := m.Vertices()
	a, b, c := vs[0], vs[1], vs[2]
	f := m.Faces()[0]
	facets := []Facet{
		{A: a, B: b, Face: f},
		{A: b, B: c, Face: f},
		{A: b, B: a, Face: f}, // same edge as the first, reversed
	}

	// WHEN deduplicated
	edges := DedupFacets(facets)

	// THEN both orientations collapse and order follows first appearance
	if len(edges) != 2 {
		t.Fatalf("edge count: got %d, want 2", len(edges))
	}
	if edges[0] != edgeBetween(a, b) {
		t.Errorf("edges[0]: got %s, want %s", edges[0], edgeBetween(a, b))
	}
	if edges[1] != edgeBetween(b, c) {
		t.Errorf("edges[1]: got %s, want %s", edges[1], edgeBetween(b, c))
	}
}

func TestBoundaryEdges_SquareComplex(t *testing.T) {
	// GIVEN two triangles sharing the a-c diagonal
	m, vs := squareMesh(t)

	// WHEN boundary edges are detected
	boundary, err := BoundaryEdges(m)
	if err != nil {
		t.Fatalf("BoundaryEdges: %v", err)
	}

	// THEN the four outer edges are boundary and the diagonal is not
	if len(boundary) != 4 {
		t.Fatalf("boundary edge count: got %d, want 4", len(boundary))
	}
	diagonal := edgeBetween(vs[0], vs[2])
	for _, e := range boundary {
		if e == diagonal {
			t.Errorf("interior diagonal %s reported as boundary", e)
		}
	}
}

func TestHullVertices_SquareComplex_AllFour(t *testing.T) {
	m, _ := squareMesh(t)
	hull, err := HullVertices(m)
	if err != nil {
		t.Fatalf("HullVertices: %v", err)
	}
	if len(hull) != 4 {
		t.Errorf("hull vertex count: got %d, want 4", len(hull))
	}
}

func TestEulerCharacteristic_PlanarComplexes(t *testing.T) {
	// GIVEN a single triangle and a split square
	tri := NewTriangleMesh()
	sq, _ := squareMesh(t)

	// THEN both are disks with V - E + F = 1
	if chi := EulerCharacteristic(tri); chi != 1 {
		t.Errorf("triangle characteristic: got %d, want 1", chi)
	}
	if chi := EulerCharacteristic(sq); chi != 1 {
		t.Errorf("square characteristic: got %d, want 1", chi)
	}
}

func BenchmarkUniqueEdges(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	m, err := GenerateRandomMesh(256, DefaultCoordinateRange, rng)
	if err != nil {
		b.Fatalf("GenerateRandomMesh: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := UniqueEdges(m); err != nil {
			b.Fatal(err)
		}
	}
}
