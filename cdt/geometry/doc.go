// Package geometry isolates the CDT algorithms from any concrete
// triangulation engine.
//
// # Reading Guide
//
// Start with these files to understand the abstraction:
//   - backend.go: opaque handle types and the Query/Mutator capability interfaces
//   - facets.go: facet canonicalization, the edge-derivation and boundary-detection algorithm
//   - delaunay.go: the concrete adapter over the fogleman/delaunay engine
//   - mesh.go: the in-memory backend used by tests
//   - generate.go: random-point triangulation provider
//
// Handles are opaque references by identity; they carry no geometric
// data and are only meaningful to the backend instance that issued
// them. This is the seam that keeps every CDT algorithm
// backend-independent: the mesh backend and the Delaunay adapter
// satisfy the exact same contracts.
package geometry
