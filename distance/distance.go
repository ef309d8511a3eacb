package distance

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i, av := range a {
		d := av - b[i]
		sum += d * d
	}
	return sum
}

// ToSet computes the squared distance from x to every centroid and writes the
// results into dst, which is grown if needed. The returned slice has
// len(centroids) entries.
func ToSet(dst []float64, x []float64, centroids [][]float64) []float64 {
	if cap(dst) < len(centroids) {
		dst = make([]float64, len(centroids))
	}
	dst = dst[:len(centroids)]
	for k, c := range centroids {
		dst[k] = SquaredL2(x, c)
	}
	return dst
}

// Nearest returns the index of the centroid closest to x and the squared
// distance to it. Ties resolve to the lowest index. A NaN distance never
// compares smaller, so a NaN against every centroid yields index 0 with a NaN
// distance; callers must check the returned distance.
//
// Returns (-1, +Inf) if centroids is empty.
func Nearest(x []float64, centroids [][]float64) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for k, c := range centroids {
		d := SquaredL2(x, c)
		if best < 0 || d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best, bestDist
}

// Pairwise returns the N×K matrix of squared distances between points and
// centroids. Both slices must be non-empty.
func Pairwise(points, centroids [][]float64) *mat.Dense {
	out := mat.NewDense(len(points), len(centroids), nil)
	for i, p := range points {
		ToSet(out.RawRowView(i), p, centroids)
	}
	return out
}
