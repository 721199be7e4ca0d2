package temporal

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by every construction-time invariant violation.
var ErrInvariant = errors.New("temporal invariant violated")

// InvariantError describes a Trace or Interval that could not be built.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
