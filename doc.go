// Package kmeans partitions points into K clusters with Lloyd's algorithm
// seeded by k-means++.
//
// # Quick Start
//
//	x := mat.NewDense(4, 2, []float64{
//	    0, 0,
//	    0, 1,
//	    10, 0,
//	    10, 1,
//	})
//
//	res, err := kmeans.Cluster(ctx, x, 2, kmeans.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Labels, res.Inertia)
//
// # Algorithm
//
// Seeding picks the first centroid uniformly and every following centroid
// with probability proportional to its squared distance to the nearest
// centroid chosen so far. Each iteration then assigns every point to its
// nearest centroid (ties to the lowest index) and moves every centroid to the
// mean of its points. The run stops once the total squared centroid shift is
// at most the tolerance, or after the iteration cap. Reaching the cap is
// reported as StatusMaxItersReached, not as an error.
//
// # Empty Clusters
//
// A cluster that receives no points is resolved by the EmptyClusterPolicy:
//
//	kmeans.ReseedFarthestPoint // default: move it onto the worst-served point
//	kmeans.KeepPrevious        // leave it where it was
//
// # Restarts
//
// Cluster never retries. BestOf runs independent restarts concurrently and
// keeps the solution with the lowest inertia:
//
//	res, err := kmeans.BestOf(ctx, x, 3, 10, kmeans.WithSeed(7))
//
// # Reproducibility
//
// Runs with the same seed, data and options produce identical labels and
// centroids. Without WithSeed a fresh seed is drawn and reported in
// Result.Seed so the run can be repeated.
//
// # Observability
//
// Structured logging goes through Logger (a log/slog wrapper) and run
// statistics through MetricsCollector. See the prommetrics package for a
// Prometheus collector.
package kmeans
