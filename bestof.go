package kmeans

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// BestOf runs restarts independent clustering runs concurrently and returns
// the one with the lowest inertia, the lowest restart index on ties.
//
// Restart i is seeded with base+i, where base is the WithSeed value or a
// freshly drawn seed. With a ResourceController each restart occupies one
// worker slot while it runs; without one all restarts run at once.
// The first failing restart cancels the others and its error is returned.
func BestOf(ctx context.Context, x mat.Matrix, k, restarts int, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	if restarts < 1 {
		return nil, invalidArgument("restarts must be at least 1, got %d", restarts)
	}
	if o.source != nil {
		return nil, invalidArgument("BestOf does not accept a custom random source")
	}
	rows, dim, err := rowsOf(x)
	if err != nil {
		return nil, err
	}

	base := o.seed
	if !o.seedSet {
		base = rand.Uint64()
	}

	o.logger.DebugContext(ctx, "starting restarts",
		"restarts", restarts,
		"base_seed", base,
		"max_workers", o.controller.MaxWorkers(),
	)

	results := make([]*Result, restarts)
	g, gctx := errgroup.WithContext(ctx)
	for i := range restarts {
		g.Go(func() error {
			if err := o.controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.controller.ReleaseWorker()

			ro := *o
			ro.seed = base + uint64(i)
			ro.seedSet = true

			res, err := run(gctx, rows, dim, k, &ro)
			if res != nil {
				o.logger.LogRestart(gctx, i, ro.seed, res.Inertia, nil)
			} else {
				o.logger.LogRestart(gctx, i, ro.seed, 0, err)
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Inertia < best.Inertia {
			best = r
		}
	}
	return best, nil
}
