package cdt

import "fmt"

// InvalidParametersError reports a configuration value that fails its
// validation rule. Parameter names match the CLI flag spelling so the
// message points straight at what to fix.
type InvalidParametersError struct {
	Parameter  string
	Value      string
	Constraint string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%s: %s", e.Parameter, e.Value, e.Constraint)
}

// UnsupportedDimensionError reports a requested triangulation dimension
// outside what the system implements.
type UnsupportedDimensionError struct {
	Dimension int
}

func (e *UnsupportedDimensionError) Error() string {
	return fmt.Sprintf("unsupported dimension %d: only 2-dimensional triangulations are implemented", e.Dimension)
}

// ValidationError reports a triangulation that failed a structural
// check. Check names the failed invariant; Detail carries the numbers.
type ValidationError struct {
	Check  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("triangulation validation failed (%s): %s", e.Check, e.Detail)
}

// ErgodicsError reports a move attempt that could not even be
// classified as accepted or rejected, as opposed to an ordinary
// rejection which is a normal MoveResult.
type ErgodicsError struct {
	Move   MoveType
	Reason string
	Err    error
}

func (e *ErgodicsError) Error() string {
	return fmt.Sprintf("ergodic move %s failed: %s", e.Move, e.Reason)
}

func (e *ErgodicsError) Unwrap() error { return e.Err }
