package kmeans

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rowsOf returns the rows of x. Rows of a *mat.Dense alias its backing
// array and must not be written; other matrices are copied.
func rowsOf(x mat.Matrix) ([][]float64, int, error) {
	if x == nil {
		return nil, 0, invalidArgument("matrix is nil")
	}
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, 0, invalidArgument("matrix is %d×%d", r, c)
	}

	rows := make([][]float64, r)
	if d, ok := x.(mat.RawRowViewer); ok {
		for i := range rows {
			rows[i] = d.RawRowView(i)
		}
		return rows, c, nil
	}
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}
	return rows, c, nil
}

// denseOf copies rows into a new matrix. rows must be non-empty and
// rectangular.
func denseOf(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
