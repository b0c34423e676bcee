package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a particle with NaN or Inf kinematics.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrEmptyState indicates a request for a particle set with no particles.
	ErrEmptyState = errors.New("dynamo: particle set is empty")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownLayout indicates a scene layout name with no registered generator.
	ErrUnknownLayout = errors.New("dynamo: unknown layout")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// BoundsError reports the offending parameter and wraps ErrParameterBounds.
func BoundsError(name string, value float64, want string) error {
	return fmt.Errorf("%w: %s = %g, want %s", ErrParameterBounds, name, value, want)
}
