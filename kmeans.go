package kmeans

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/internal/lloyd"
	"github.com/hupe1980/kmeans/rng"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/mat"
)

// iterationLogInterval throttles per-iteration debug logs.
const iterationLogInterval = time.Second

// Seed selects k initial centroids from the rows of x with k-means++.
//
// The returned K×D matrix holds copies of k distinct rows of x.
func Seed(x mat.Matrix, k int, src RandomSource) (*mat.Dense, error) {
	if src == nil {
		return nil, invalidArgument("random source is nil")
	}
	rows, _, err := rowsOf(x)
	if err != nil {
		return nil, err
	}
	centroids, _, err := lloyd.PlusPlus(rows, k, src)
	if err != nil {
		return nil, translateError(err)
	}
	return denseOf(centroids), nil
}

// Cluster partitions the rows of x into k clusters.
//
// It returns an error for invalid arguments (ErrInvalidArgument), NaN or
// infinite values (ErrNumericInstability), an exhausted memory budget
// (ErrMemoryLimitExceeded) or a cancelled context. Hitting the iteration cap
// is not an error; it is reported as StatusMaxItersReached.
func Cluster(ctx context.Context, x mat.Matrix, k int, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	rows, dim, err := rowsOf(x)
	if err != nil {
		o.metricsCollector.RecordRun(0, 0, 0, err)
		o.logger.WithK(k).LogRun(ctx, 0, 0, 0, 0, err)
		return nil, err
	}
	return run(ctx, rows, dim, k, o)
}

func run(ctx context.Context, rows [][]float64, dim, k int, o *options) (res *Result, err error) {
	start := time.Now()
	logger := o.logger.WithK(k).WithDimension(dim).WithCount(len(rows))

	var out *lloyd.Outcome
	defer func() {
		elapsed := time.Since(start)
		var (
			status     Status
			iterations int
			inertia    float64
		)
		if out != nil {
			status, iterations, inertia = statusOf(out.State), out.Iterations, out.Inertia
		}
		o.metricsCollector.RecordRun(status, iterations, elapsed, err)
		logger.LogRun(ctx, status, iterations, inertia, elapsed, err)
	}()

	cfg, seed, err := o.lloydConfig(k, dim)
	if err != nil {
		return nil, err
	}
	logger = logger.WithSeed(seed)

	workspace := lloyd.WorkspaceBytes(len(rows), k, dim)
	if err := o.controller.AcquireMemory(workspace); err != nil {
		return nil, fmt.Errorf("%w (workspace %d bytes, %d of %d bytes in use)",
			translateError(err), workspace, o.controller.MemoryUsage(), o.controller.MemoryLimit())
	}
	defer o.controller.ReleaseMemory(workspace)

	throttle := rate.Sometimes{First: 3, Interval: iterationLogInterval}
	cfg.OnIteration = func(s IterationStats) {
		o.metricsCollector.RecordIteration(s.Iteration, s.Inertia, s.Shift)
		for range s.EmptyClusters {
			o.metricsCollector.RecordEmptyCluster(o.policy)
		}
		throttle.Do(func() { logger.logIteration(ctx, s) })
	}

	out, err = lloyd.Run(ctx, rows, k, cfg)
	if err != nil {
		return nil, translateError(err)
	}

	return &Result{
		Labels:     out.Labels,
		Centroids:  denseOf(out.Centroids),
		Iterations: out.Iterations,
		Status:     statusOf(out.State),
		Inertia:    out.Inertia,
		Seed:       seed,
		History:    out.History,
	}, nil
}

func (o *options) lloydConfig(k, dim int) (lloyd.Config, uint64, error) {
	cfg := lloyd.Config{
		MaxIterations:      o.maxIterations,
		Tolerance:          o.tolerance,
		EmptyClusterPolicy: o.policy,
		Workers:            o.workers,
	}

	var seed uint64
	switch {
	case o.source != nil:
		cfg.Source = o.source
		if p, ok := o.source.(*rng.PCG); ok {
			seed = p.Seed()
		}
	case o.seedSet:
		seed = o.seed
		cfg.Source = rng.New(seed)
	default:
		seed = rand.Uint64()
		cfg.Source = rng.New(seed)
	}

	if o.initial != nil {
		r, c := o.initial.Dims()
		if r != k {
			return cfg, 0, invalidArgument("%d initial centroids for k=%d", r, k)
		}
		if c != dim {
			return cfg, 0, &ErrDimensionMismatch{Expected: dim, Actual: c}
		}
		initial, _, err := rowsOf(o.initial)
		if err != nil {
			return cfg, 0, err
		}
		cfg.Initial = initial
	}

	return cfg, seed, nil
}

// Inertia returns the sum of squared distances between every row of x and
// the centroid its label selects.
func Inertia(x mat.Matrix, labels []int, centroids mat.Matrix) (float64, error) {
	rows, dim, err := rowsOf(x)
	if err != nil {
		return 0, err
	}
	cs, cdim, err := rowsOf(centroids)
	if err != nil {
		return 0, err
	}
	if cdim != dim {
		return 0, &ErrDimensionMismatch{Expected: dim, Actual: cdim}
	}
	if len(labels) != len(rows) {
		return 0, invalidArgument("%d labels for %d rows", len(labels), len(rows))
	}

	var total float64
	for i, row := range rows {
		l := labels[i]
		if l < 0 || l >= len(cs) {
			return 0, invalidArgument("label %d of row %d out of range [0, %d)", l, i, len(cs))
		}
		total += distance.SquaredL2(row, cs[l])
	}
	if !isFinite(total) {
		return 0, numericInstability("inertia is %v", total)
	}
	return total, nil
}
