package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a state snapshot with NaN or Inf fields.
	ErrInvalidState = errors.New("longsim: invalid state (NaN or Inf detected)")

	// ErrBadDuration indicates a non-positive run duration.
	ErrBadDuration = errors.New("longsim: duration must be positive")

	// ErrBadSampleTime indicates a model with a non-positive sample time.
	ErrBadSampleTime = errors.New("longsim: sample time must be positive")
)

// StepError wraps an error with the step at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
