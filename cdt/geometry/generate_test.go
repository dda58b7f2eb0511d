package geometry

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateRandomDelaunay_TooFewVertices(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := GenerateRandomDelaunay(2, DefaultCoordinateRange, rng)
	var perr *GenerationParamsError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want GenerationParamsError", err)
	}
	if perr.Expected != "at least 3" {
		t.Errorf("Expected field: got %q, want %q", perr.Expected, "at least 3")
	}
}

func TestGenerateRandomDelaunay_EmptyRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := GenerateRandomDelaunay(8, CoordinateRange{Min: 5, Max: 5}, rng)
	var perr *GenerationParamsError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want GenerationParamsError", err)
	}
}

func TestGenerateRandomDelaunay_Reproducible(t *testing.T) {
	// GIVEN two generators seeded identically
	b1, err := GenerateRandomDelaunay(32, DefaultCoordinateRange, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	b2, err := GenerateRandomDelaunay(32, DefaultCoordinateRange, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}

	// THEN the complexes agree (handles differ, structure does not)
	if b1.VertexCount() != b2.VertexCount() ||
		b1.EdgeCount() != b2.EdgeCount() ||
		b1.FaceCount() != b2.FaceCount() {
		t.Errorf("counts diverged: V=%d/%d E=%d/%d F=%d/%d",
			b1.VertexCount(), b2.VertexCount(),
			b1.EdgeCount(), b2.EdgeCount(),
			b1.FaceCount(), b2.FaceCount())
	}
	c1, _ := b1.VertexCoordinates(b1.Vertices()[0])
	c2, _ := b2.VertexCoordinates(b2.Vertices()[0])
	if c1[0] != c2[0] || c1[1] != c2[1] {
		t.Errorf("first point diverged: (%g,%g) vs (%g,%g)", c1[0], c1[1], c2[0], c2[1])
	}
}

func TestGenerateRandomDelaunay_DiskCharacteristic(t *testing.T) {
	// A triangulation of points in general position is a topological
	// disk: V - E + F = 1 regardless of the point count.
	for _, n := range []int{3, 10, 64} {
		rng := rand.New(rand.NewSource(int64(n)))
		b, err := GenerateRandomDelaunay(n, DefaultCoordinateRange, rng)
		if err != nil {
			t.Fatalf("GenerateRandomDelaunay(%d): %v", n, err)
		}
		if b.VertexCount() != n {
			t.Errorf("n=%d: vertex count %d", n, b.VertexCount())
		}
		if chi := EulerCharacteristic(b); chi != 1 {
			t.Errorf("n=%d: characteristic %d, want 1", n, chi)
		}
	}
}

func TestGenerateRandomMesh_PreservesComplex(t *testing.T) {
	// GIVEN a mesh copied from a generated triangulation
	rng := rand.New(rand.NewSource(99))
	m, err := GenerateRandomMesh(16, DefaultCoordinateRange, rng)
	if err != nil {
		t.Fatalf("GenerateRandomMesh: %v", err)
	}

	// THEN the copy is a valid disk with the same vertex count
	if m.VertexCount() != 16 {
		t.Errorf("vertex count: got %d, want 16", m.VertexCount())
	}
	if !m.IsValid() {
		t.Errorf("copied mesh invalid")
	}
	if chi := EulerCharacteristic(m); chi != 1 {
		t.Errorf("characteristic: got %d, want 1", chi)
	}

	// AND the copy accepts mutation where the source does not
	boundary, err := BoundaryEdges(m)
	if err != nil {
		t.Fatalf("BoundaryEdges: %v", err)
	}
	interior := 0
	for _, e := range m.Edges() {
		onBoundary := false
		for _, be := range boundary {
			if e == be {
				onBoundary = true
				break
			}
		}
		if !onBoundary && m.CanFlipEdge(e) {
			interior++
		}
	}
	if interior == 0 {
		t.Errorf("no flippable interior edges in a 16-vertex mesh")
	}
}

func TestCopyToMesh_SquareDelaunay(t *testing.T) {
	src := squareDelaunay(t)
	m, err := CopyToMesh(src)
	if err != nil {
		t.Fatalf("CopyToMesh: %v", err)
	}
	if m.VertexCount() != src.VertexCount() ||
		m.EdgeCount() != src.EdgeCount() ||
		m.FaceCount() != src.FaceCount() {
		t.Errorf("counts diverged: V=%d/%d E=%d/%d F=%d/%d",
			m.VertexCount(), src.VertexCount(),
			m.EdgeCount(), src.EdgeCount(),
			m.FaceCount(), src.FaceCount())
	}
}
