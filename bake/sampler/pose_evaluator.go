package sampler

import (
	"fmt"
)

// PoseEvaluator wraps the authoring tool's shared animation clock and pose
// state. Setting the clock re-evaluates every curve, constraint, and IK chain
// for that frame; the matrix queries then read the resolved pose.
//
// The evaluator is a single shared resource: only one clock value may be
// active at a time, and all matrix reads for a frame must happen before the
// clock advances. Queries are assumed synchronous and idempotent for a fixed
// clock value. Callers must not drive one evaluator from two goroutines.
type PoseEvaluator interface {
	// Clock returns the currently active frame.
	//
	// Returns:
	//   - int: the active frame
	Clock() int

	// SetClock advances the shared clock to the given frame, resolving all
	// constraints and IK for it.
	//
	// Parameters:
	//   - frame: the frame to activate
	//
	// Returns:
	//   - error: evaluator failure for that clock value
	SetClock(frame int) error

	// WorldMatrix returns the named bone's world matrix at the active clock.
	//
	// Parameters:
	//   - bone: the bone name
	//
	// Returns:
	//   - [16]float32: the bone's world matrix, column-major
	//   - error: evaluator failure
	WorldMatrix(bone string) ([16]float32, error)

	// LocalMatrix returns the named bone's parent-relative matrix at the
	// active clock.
	//
	// Parameters:
	//   - bone: the bone name
	//
	// Returns:
	//   - [16]float32: the bone's local matrix, column-major
	//   - error: evaluator failure
	LocalMatrix(bone string) ([16]float32, error)
}

// EvaluatorError wraps a pose evaluator failure. The export is aborted and
// the clock restored; no partial artifact is returned.
type EvaluatorError struct {
	// Frame is the clock value that failed.
	Frame int

	// Err is the evaluator's underlying failure.
	Err error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("sampler: pose evaluator failed at frame %d: %v", e.Frame, e.Err)
}

// Unwrap exposes the underlying evaluator failure.
func (e *EvaluatorError) Unwrap() error {
	return e.Err
}
