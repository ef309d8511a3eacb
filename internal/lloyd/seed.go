package lloyd

import (
	"math"
	"slices"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/rng"
	"gonum.org/v1/gonum/floats"
)

// PlusPlus selects k initial centroids from rows using k-means++.
//
// The first centroid is drawn uniformly. Each following centroid is drawn
// from the rows not chosen yet, with probability proportional to the squared
// distance to the nearest centroid chosen so far. The returned centroids are
// copies; indices holds the chosen row of each.
//
// If every remaining row coincides with an already chosen centroid the
// distribution is undefined and ErrInvalidArgument is returned.
func PlusPlus(rows [][]float64, k int, src rng.Source) (centroids [][]float64, indices []int, err error) {
	if _, err := validateRows(rows); err != nil {
		return nil, nil, err
	}
	n := len(rows)
	if err := validateK(k, n); err != nil {
		return nil, nil, err
	}
	if src == nil {
		return nil, nil, invalidArgument("random source is nil")
	}

	// candidates[j] is a row index still eligible; minDist[j] is its squared
	// distance to the nearest chosen centroid.
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	centroids = make([][]float64, 0, k)
	indices = make([]int, 0, k)

	pick := src.UniformInt(n)
	for {
		row := candidates[pick]
		centroids = append(centroids, slices.Clone(rows[row]))
		indices = append(indices, row)
		candidates = slices.Delete(candidates, pick, pick+1)
		minDist = slices.Delete(minDist, pick, pick+1)

		if len(centroids) == k {
			return centroids, indices, nil
		}

		latest := centroids[len(centroids)-1]
		for j, r := range candidates {
			d := distance.SquaredL2(rows[r], latest)
			if !isFinite(d) {
				return nil, nil, numericInstability("distance from row %d to centroid %d is %v", r, len(centroids)-1, d)
			}
			if d < minDist[j] {
				minDist[j] = d
			}
		}

		total := floats.Sum(minDist)
		if math.IsInf(total, 0) {
			return nil, nil, numericInstability("seeding weights overflow")
		}
		if total == 0 {
			return nil, nil, invalidArgument(
				"cannot seed centroid %d: all %d remaining points coincide with chosen centroids",
				len(centroids), len(candidates))
		}

		pick, err = src.WeightedChoice(minDist)
		if err != nil {
			return nil, nil, invalidArgument("seeding distribution: %v", err)
		}
	}
}
