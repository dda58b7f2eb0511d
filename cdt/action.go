package cdt

import (
	"fmt"
	"math"
)

// ActionConfig carries the couplings of the 2D Regge action
//
//	S = -coupling0*N0 - coupling2*N2 + cosmological*N1
//
// where N0, N1, N2 are the vertex, edge and face counts. In two
// dimensions curvature concentrates at vertices and volume at faces,
// so the action is a pure counting functional.
type ActionConfig struct {
	// Coupling0 weights the vertex count (gravitational coupling).
	Coupling0 float64 `yaml:"coupling0"`
	// Coupling2 weights the face count (bare volume coupling).
	Coupling2 float64 `yaml:"coupling2"`
	// Cosmological weights the edge count (cosmological constant).
	Cosmological float64 `yaml:"cosmological"`
}

// DefaultActionConfig returns the standard couplings used across the
// presets and the CLI defaults.
func DefaultActionConfig() ActionConfig {
	return ActionConfig{
		Coupling0:    1.0,
		Coupling2:    1.0,
		Cosmological: 0.1,
	}
}

// Validate rejects non-finite couplings. Any real value, including
// negative and zero couplings, is physically admissible.
func (c ActionConfig) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"coupling0", c.Coupling0},
		{"coupling2", c.Coupling2},
		{"cosmological", c.Cosmological},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return &InvalidParametersError{
				Parameter:  p.name,
				Value:      fmt.Sprintf("%g", p.value),
				Constraint: "must be finite",
			}
		}
	}
	return nil
}

// ReggeAction2D computes the 2D Regge action for the given simplex
// counts and couplings. Fused multiply-adds keep the evaluation to a
// single rounding per term, so two states with equal counts always
// produce bit-identical actions.
func ReggeAction2D(vertices, edges, faces int, coupling0, coupling2, cosmological float64) float64 {
	n0 := float64(vertices)
	n1 := float64(edges)
	n2 := float64(faces)
	return math.FMA(cosmological, n1, math.FMA(-coupling0, n0, -(coupling2 * n2)))
}

// Evaluate computes the action for the given simplex counts under the
// configured couplings.
func (c ActionConfig) Evaluate(vertices, edges, faces int) float64 {
	return ReggeAction2D(vertices, edges, faces, c.Coupling0, c.Coupling2, c.Cosmological)
}

// EvaluateTriangulation reads the counts off a triangulation and
// evaluates the action, hitting the cached edge count.
func (c ActionConfig) EvaluateTriangulation(tri *Triangulation) float64 {
	return c.Evaluate(tri.VertexCount(), tri.EdgeCount(), tri.FaceCount())
}
