package lloyd

import (
	"github.com/hupe1980/kmeans/distance"
	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps small inputs on a single goroutine.
const minRowsPerWorker = 512

// Assign labels every row with the index of its nearest centroid and records
// the squared distance to it. Ties resolve to the lowest centroid index.
//
// labels and dists must have len(rows) entries; they are overwritten. Rows
// are split into contiguous chunks processed by up to workers goroutines and
// all results are written before Assign returns.
func Assign(rows, centroids [][]float64, labels []int, dists []float64, workers int) error {
	if len(centroids) == 0 {
		return invalidArgument("no centroids")
	}
	if len(labels) != len(rows) || len(dists) != len(rows) {
		return invalidArgument("label buffer has %d entries, distance buffer %d, want %d",
			len(labels), len(dists), len(rows))
	}
	if len(rows) > 0 {
		dim := len(rows[0])
		for _, c := range centroids {
			if len(c) != dim {
				return &ErrDimensionMismatch{Expected: dim, Actual: len(c)}
			}
		}
	}

	n := len(rows)
	chunks := workers
	if limit := (n + minRowsPerWorker - 1) / minRowsPerWorker; chunks > limit {
		chunks = limit
	}
	if chunks <= 1 {
		return assignRange(rows, centroids, labels, dists, 0, n)
	}

	size := (n + chunks - 1) / chunks
	var g errgroup.Group
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error {
			return assignRange(rows, centroids, labels, dists, start, end)
		})
	}
	return g.Wait()
}

func assignRange(rows, centroids [][]float64, labels []int, dists []float64, start, end int) error {
	for i := start; i < end; i++ {
		k, d := distance.Nearest(rows[i], centroids)
		if !isFinite(d) {
			return numericInstability("distance from row %d to nearest centroid is %v", i, d)
		}
		labels[i] = k
		dists[i] = d
	}
	return nil
}
