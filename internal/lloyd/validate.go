package lloyd

import "math"

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateRows checks that rows is non-empty, rectangular with a positive
// dimension, and free of NaN/Inf. It returns the dimension.
func validateRows(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, invalidArgument("dataset has no points")
	}
	dim := len(rows[0])
	if dim == 0 {
		return 0, invalidArgument("dataset has zero features")
	}
	for i, row := range rows {
		if len(row) != dim {
			return 0, &ErrDimensionMismatch{Expected: dim, Actual: len(row)}
		}
		for j, v := range row {
			if !isFinite(v) {
				return 0, numericInstability("non-finite value %v at row %d, column %d", v, i, j)
			}
		}
	}
	return dim, nil
}

func validateK(k, n int) error {
	if k < 1 {
		return invalidArgument("k must be at least 1, got %d", k)
	}
	if k > n {
		return invalidArgument("k (%d) exceeds number of points (%d)", k, n)
	}
	return nil
}
