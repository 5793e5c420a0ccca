package NavierStokes2D

import (
	"errors"
	"fmt"
)

// ErrNonFinite is wrapped by every error reporting a NaN or Inf in the
// solution. The state is unusable afterwards, recovery means a new run with
// a smaller time step or a finer grid.
var ErrNonFinite = errors.New("non-finite value in solution")

type InstabilityError struct {
	Step  int
	Field string
	I, J  int
	Value float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("step %d: %s(%d,%d) = %v, the time step is likely too large for this grid",
		e.Step, e.Field, e.I, e.J, e.Value)
}

func (e *InstabilityError) Unwrap() error { return ErrNonFinite }
