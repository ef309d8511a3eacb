package lloyd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for out-of-range K, mismatched
	// dimensions, invalid configuration, or a seeding distribution whose
	// weights sum to zero.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericInstability is returned when a NaN or Inf enters or is
	// produced by a distance or mean computation.
	ErrNumericInstability = errors.New("numeric instability")
)

// ErrDimensionMismatch indicates a vector whose length differs from the
// dataset dimension. It matches ErrInvalidArgument under errors.Is.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return ErrInvalidArgument }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func numericInstability(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNumericInstability, fmt.Sprintf(format, args...))
}
