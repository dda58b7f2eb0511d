package geometry

import (
	"bytes"
	"sort"
)

// A Facet is one boundary element of a face: in 2D, the vertex pair
// left after omitting one vertex of a triangle. Interior facets appear
// in exactly two faces' facet lists; boundary facets in exactly one.
type Facet struct {
	A, B VertexHandle
	Face FaceHandle
}

// Edge returns the canonical edge handle for the facet's vertex pair.
func (f Facet) Edge() EdgeHandle { return edgeBetween(f.A, f.B) }

// EnumerateFacets lists every facet of every face, in face order. For
// a triangle (a,b,c) the facets are (b,c), (a,c), (a,b) - one per
// omitted vertex. Each interior edge therefore occurs twice in the
// result.
func EnumerateFacets(q Query) ([]Facet, error) {
	faces := q.Faces()
	facets := make([]Facet, 0, 3*len(faces))
	for _, f := range faces {
		vs, err := q.FaceVertices(f)
		if err != nil {
			return nil, err
		}
		for omit := range vs {
			rest := make([]VertexHandle, 0, len(vs)-1)
			for i, v := range vs {
				if i != omit {
					rest = append(rest, v)
				}
			}
			if len(rest) != 2 {
				continue
			}
			facets = append(facets, Facet{A: rest[0], B: rest[1], Face: f})
		}
	}
	return facets, nil
}

// DedupFacets collapses a facet list to its unique edges. The
// canonical key is the sorted endpoint identity pair; the map records
// the first-seen facet index per key, and the unique edges come out
// ordered by that index. O(F) time and space over the scanned facets.
func DedupFacets(facets []Facet) []EdgeHandle {
	firstSeen := make(map[EdgeHandle]int, len(facets))
	for i, f := range facets {
		key := f.Edge()
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = i
		}
	}
	edges := make([]EdgeHandle, 0, len(firstSeen))
	for key := range firstSeen {
		edges = append(edges, key)
	}
	sort.Slice(edges, func(i, j int) bool {
		return firstSeen[edges[i]] < firstSeen[edges[j]]
	})
	return edges
}

// UniqueEdges derives the edge set of a backend from its face
// incidence. This is the single most expensive query in the system;
// the CDT wrapper caches its count (cdt.Triangulation).
func UniqueEdges(q Query) ([]EdgeHandle, error) {
	facets, err := EnumerateFacets(q)
	if err != nil {
		return nil, err
	}
	return DedupFacets(facets), nil
}

// CountEdges is UniqueEdges reduced to the edge count.
func CountEdges(q Query) (int, error) {
	edges, err := UniqueEdges(q)
	if err != nil {
		return 0, err
	}
	return len(edges), nil
}

// BoundaryEdges finds the edges on the boundary of the complex: the
// same canonicalization as DedupFacets, keeping only facets that occur
// in exactly one face. For a triangulation of random points these are
// the convex hull edges.
func BoundaryEdges(q Query) ([]EdgeHandle, error) {
	facets, err := EnumerateFacets(q)
	if err != nil {
		return nil, err
	}
	occurrences := make(map[EdgeHandle]int, len(facets))
	firstSeen := make(map[EdgeHandle]int, len(facets))
	for i, f := range facets {
		key := f.Edge()
		occurrences[key]++
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = i
		}
	}
	boundary := make([]EdgeHandle, 0)
	for key, n := range occurrences {
		if n == 1 {
			boundary = append(boundary, key)
		}
	}
	sort.Slice(boundary, func(i, j int) bool {
		return firstSeen[boundary[i]] < firstSeen[boundary[j]]
	})
	return boundary, nil
}

// HullVertices returns the vertices incident to a boundary edge, in
// canonical identity order.
func HullVertices(q Query) ([]VertexHandle, error) {
	boundary, err := BoundaryEdges(q)
	if err != nil {
		return nil, err
	}
	seen := make(map[VertexHandle]struct{}, len(boundary))
	hull := make([]VertexHandle, 0, len(boundary))
	for _, e := range boundary {
		a, b, err := q.EdgeEndpoints(e)
		if err != nil {
			return nil, err
		}
		for _, v := range []VertexHandle{a, b} {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				hull = append(hull, v)
			}
		}
	}
	sort.Slice(hull, func(i, j int) bool {
		return bytes.Compare(hull[i].id[:], hull[j].id[:]) < 0
	})
	return hull, nil
}
