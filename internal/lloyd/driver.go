package lloyd

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/hupe1980/kmeans/rng"
	"gonum.org/v1/gonum/floats"
)

// State is a phase of a clustering run.
type State int

const (
	StateSeeding State = iota
	StateIterating
	StateConverged
	StateMaxItersReached
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "Seeding"
	case StateIterating:
		return "Iterating"
	case StateConverged:
		return "Converged"
	case StateMaxItersReached:
		return "MaxItersReached"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IterationStats describes one assignment/update iteration.
type IterationStats struct {
	// Iteration is 1-based.
	Iteration int
	// Inertia is the total squared distance of the assignment pass, measured
	// against the centroids the iteration started with.
	Inertia float64
	// Shift is the total squared centroid displacement of the update.
	Shift float64
	// EmptyClusters counts the clusters that received no points.
	EmptyClusters int
}

// Config controls Run.
type Config struct {
	// MaxIterations caps the number of iterations. Must be >= 1.
	MaxIterations int
	// Tolerance is the convergence threshold on Shift. Must be >= 0.
	Tolerance float64
	// EmptyClusterPolicy resolves clusters left without points.
	EmptyClusterPolicy EmptyClusterPolicy
	// Workers bounds the goroutines of an assignment pass. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// Source drives k-means++ seeding. Required unless Initial is set.
	Source rng.Source
	// Initial, if non-nil, replaces seeding. It is copied.
	Initial [][]float64
	// OnIteration, if non-nil, is called after every iteration.
	OnIteration func(IterationStats)
}

// Outcome is the result of Run.
type Outcome struct {
	Labels     []int
	Centroids  [][]float64
	Iterations int
	State      State
	// Inertia is measured against the returned centroids.
	Inertia float64
	History []IterationStats
}

// WorkspaceBytes estimates the memory Run allocates for n rows, k clusters
// and dim features.
func WorkspaceBytes(n, k, dim int) int64 {
	const word = 8
	return int64(word) * (int64(n)*2 + int64(k)*int64(dim)*2 + int64(k))
}

// Run clusters rows into k clusters.
//
// Each iteration assigns every row to its nearest centroid, recomputes the
// centroids as cluster means and stops once the centroid shift is within
// cfg.Tolerance or cfg.MaxIterations iterations have run. Reaching the cap is
// reported as StateMaxItersReached, not as an error. A final assignment pass
// labels the rows against the returned centroids.
//
// ctx is checked between iterations.
func Run(ctx context.Context, rows [][]float64, k int, cfg Config) (*Outcome, error) {
	dim, err := validateRows(rows)
	if err != nil {
		return nil, err
	}
	if err := validateK(k, len(rows)); err != nil {
		return nil, err
	}
	if cfg.MaxIterations < 1 {
		return nil, invalidArgument("max iterations must be at least 1, got %d", cfg.MaxIterations)
	}
	if !(cfg.Tolerance >= 0) || !isFinite(cfg.Tolerance) {
		return nil, invalidArgument("tolerance must be finite and non-negative, got %v", cfg.Tolerance)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var centroids [][]float64
	if cfg.Initial != nil {
		centroids, err = copyInitial(cfg.Initial, k, dim)
	} else {
		centroids, _, err = PlusPlus(rows, k, cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	n := len(rows)
	next := make([][]float64, k)
	for c := range next {
		next[c] = make([]float64, dim)
	}
	labels := make([]int, n)
	dists := make([]float64, n)
	counts := make([]int, k)

	var history []IterationStats
	iterations := 0
	state := StateIterating

	for state == StateIterating {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := Assign(rows, centroids, labels, dists, workers); err != nil {
			return nil, err
		}
		inertia := floats.Sum(dists)

		empty, err := Update(rows, labels, centroids, next, counts, cfg.EmptyClusterPolicy)
		if err != nil {
			return nil, err
		}

		converged, shift, err := Converged(centroids, next, cfg.Tolerance)
		if err != nil {
			return nil, err
		}

		centroids, next = next, centroids
		iterations++

		stats := IterationStats{
			Iteration:     iterations,
			Inertia:       inertia,
			Shift:         shift,
			EmptyClusters: empty,
		}
		history = append(history, stats)
		if cfg.OnIteration != nil {
			cfg.OnIteration(stats)
		}

		switch {
		case converged:
			state = StateConverged
		case iterations >= cfg.MaxIterations:
			state = StateMaxItersReached
		}
	}

	if err := Assign(rows, centroids, labels, dists, workers); err != nil {
		return nil, err
	}
	inertia := floats.Sum(dists)
	if !isFinite(inertia) {
		return nil, numericInstability("inertia is %v", inertia)
	}

	return &Outcome{
		Labels:     labels,
		Centroids:  centroids,
		Iterations: iterations,
		State:      state,
		Inertia:    inertia,
		History:    history,
	}, nil
}

func copyInitial(initial [][]float64, k, dim int) ([][]float64, error) {
	if len(initial) != k {
		return nil, invalidArgument("%d initial centroids for k=%d", len(initial), k)
	}
	out := make([][]float64, k)
	for c, v := range initial {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
		for j, x := range v {
			if !isFinite(x) {
				return nil, numericInstability("initial centroid %d, feature %d is %v", c, j, x)
			}
		}
		out[c] = slices.Clone(v)
	}
	return out, nil
}
