package kmeans

import (
	"cmp"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans/distance"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of a clustering run.
type Result struct {
	// Labels holds the cluster in [0, K) of every input row.
	Labels []int
	// Centroids is the K×D matrix of cluster centers.
	Centroids *mat.Dense
	// Iterations is the number of assignment/update iterations run.
	Iterations int
	// Status reports whether the run converged or hit the iteration cap.
	Status Status
	// Inertia is the sum of squared distances between every row and its
	// centroid.
	Inertia float64
	// Seed is the seed of the random source. Zero when a custom
	// RandomSource without a seed was supplied.
	Seed uint64
	// History holds the statistics of every iteration.
	History []IterationStats
}

// K returns the number of clusters.
func (r *Result) K() int {
	k, _ := r.Centroids.Dims()
	return k
}

// Sizes returns the number of rows in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.K())
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

// Members returns the row indices labelled k. The bitmap is empty when k is
// out of range.
func (r *Result) Members(k int) *roaring.Bitmap {
	bm := roaring.New()
	for i, l := range r.Labels {
		if l == k {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Predict returns the cluster whose centroid is nearest to x, ties to the
// lowest index.
func (r *Result) Predict(x []float64) (int, error) {
	cs, err := r.centroidRows(x)
	if err != nil {
		return 0, err
	}
	k, d := distance.Nearest(x, cs)
	if !isFinite(d) {
		return 0, numericInstability("distance is %v", d)
	}
	return k, nil
}

// NearestCentroids returns the n clusters whose centroids are nearest to x,
// closest first, ties to the lowest index.
func (r *Result) NearestCentroids(x []float64, n int) ([]int, error) {
	cs, err := r.centroidRows(x)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(cs) {
		return nil, invalidArgument("n must be in [1, %d], got %d", len(cs), n)
	}

	dists := distance.Pairwise([][]float64{x}, cs).RawRowView(0)
	order := make([]int, len(cs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(dists[a], dists[b])
	})
	return order[:n], nil
}

func (r *Result) centroidRows(x []float64) ([][]float64, error) {
	cs, dim, err := rowsOf(r.Centroids)
	if err != nil {
		return nil, err
	}
	if len(x) != dim {
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(x)}
	}
	for j, v := range x {
		if !isFinite(v) {
			return nil, numericInstability("feature %d is %v", j, v)
		}
	}
	return cs, nil
}
