package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans/internal/lloyd"
	"github.com/hupe1980/kmeans/internal/resource"
	"github.com/hupe1980/kmeans/rng"
)

var (
	// ErrInvalidArgument is returned for out-of-range K, mismatched
	// dimensions, invalid options, or data that cannot be seeded because all
	// remaining points coincide with the chosen centroids.
	ErrInvalidArgument = errors.New("kmeans: invalid argument")

	// ErrNumericInstability is returned when the data or an intermediate
	// distance or mean is NaN or infinite.
	ErrNumericInstability = errors.New("kmeans: numeric instability")

	// ErrMemoryLimitExceeded is returned when the workspace of a run does not
	// fit into the memory limit of the configured ResourceController.
	ErrMemoryLimitExceeded = errors.New("kmeans: memory limit exceeded")
)

// ErrDimensionMismatch indicates a vector or matrix whose dimensionality
// differs from the dataset. It matches ErrInvalidArgument under errors.Is.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("kmeans: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrInvalidArgument}
	}
	return []error{ErrInvalidArgument, e.cause}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func numericInstability(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNumericInstability, fmt.Sprintf(format, args...))
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *lloyd.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	if errors.Is(err, lloyd.ErrInvalidArgument) || errors.Is(err, rng.ErrInvalidWeights) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if errors.Is(err, lloyd.ErrNumericInstability) {
		return fmt.Errorf("%w: %w", ErrNumericInstability, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
