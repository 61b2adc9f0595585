package model

import "fmt"

// The engine reports failures through a closed set of error types. The
// pipeline boundary converts every one of them into a failed result rather
// than letting it propagate to the caller.

// GeometryError reports a failed or degenerate profile extraction. Geometry
// errors are fatal to a whole pipeline run since every operation depends on
// the one shared profile.
type GeometryError struct {
	Stage  string // "axis", "section", "profile"
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry error (%s): %s", e.Stage, e.Reason)
}

// ParameterError reports a missing, out-of-range, or conflicting operation
// parameter. Detected eagerly, before any geometry work, and blocks only the
// offending operation.
type ParameterError struct {
	Operation string
	Parameter string
	Reason    string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter error in %s: %s: %s", e.Operation, e.Parameter, e.Reason)
}

// SafetyError reports a computed parameter exceeding a fixed machine or
// material ceiling.
type SafetyError struct {
	Parameter string
	Value     float64
	Limit     float64
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("safety limit exceeded: %s = %.3f (limit %.3f)", e.Parameter, e.Value, e.Limit)
}

// OperationError reports a missing tool or an operation whose Validate
// returned false.
type OperationError struct {
	Operation string
	Reason    string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s: %s", e.Operation, e.Reason)
}

// PipelineError wraps a failure with the operation it occurred in.
type PipelineError struct {
	Operation string
	Err       error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Operation, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
