package lloyd

import "github.com/hupe1980/kmeans/distance"

// Shift returns the total squared displacement between two centroid sets.
func Shift(prev, next [][]float64) (float64, error) {
	if len(prev) != len(next) {
		return 0, invalidArgument("centroid sets have %d and %d entries", len(prev), len(next))
	}
	var sum float64
	for c := range prev {
		if len(prev[c]) != len(next[c]) {
			return 0, &ErrDimensionMismatch{Expected: len(prev[c]), Actual: len(next[c])}
		}
		sum += distance.SquaredL2(prev[c], next[c])
	}
	return sum, nil
}

// Converged reports whether the centroids moved by at most tol in total
// squared displacement. A tolerance of zero demands exact equality.
func Converged(prev, next [][]float64, tol float64) (bool, float64, error) {
	shift, err := Shift(prev, next)
	if err != nil {
		return false, 0, err
	}
	if !isFinite(shift) {
		return false, shift, numericInstability("centroid shift is %v", shift)
	}
	return shift <= tol, shift, nil
}
