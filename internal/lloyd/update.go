package lloyd

import (
	"fmt"

	"github.com/hupe1980/kmeans/distance"
	"gonum.org/v1/gonum/floats"
)

// EmptyClusterPolicy decides the centroid of a cluster that received no
// points in the preceding assignment pass.
type EmptyClusterPolicy int

const (
	// ReseedFarthestPoint moves the centroid onto the point farthest from
	// its nearest centroid.
	ReseedFarthestPoint EmptyClusterPolicy = iota
	// KeepPrevious leaves the centroid where it was.
	KeepPrevious
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case ReseedFarthestPoint:
		return "ReseedFarthestPoint"
	case KeepPrevious:
		return "KeepPrevious"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Update writes into next the mean of the rows assigned to each cluster and
// returns the number of clusters that were empty.
//
// prev holds the centroids used for the assignment; next must be a separate
// K×D buffer. counts must have K entries and receives the cluster sizes
// (zero for clusters that were empty, even if reseeded).
//
// Empty clusters are resolved by policy. For ReseedFarthestPoint they are
// handled in ascending index order; each takes a copy of the row with the
// largest squared distance to the nearest centroid already placed in next
// (lowest row index on ties). When every row coincides with a placed
// centroid the previous centroid is kept.
func Update(rows [][]float64, labels []int, prev, next [][]float64, counts []int, policy EmptyClusterPolicy) (int, error) {
	k := len(prev)
	if len(next) != k || len(counts) != k {
		return 0, invalidArgument("buffers sized %d/%d, want %d", len(next), len(counts), k)
	}
	if len(labels) != len(rows) {
		return 0, invalidArgument("%d labels for %d rows", len(labels), len(rows))
	}
	switch policy {
	case ReseedFarthestPoint, KeepPrevious:
	default:
		return 0, invalidArgument("unknown empty cluster policy %v", policy)
	}

	for c := range next {
		clear(next[c])
		counts[c] = 0
	}

	for i, row := range rows {
		c := labels[i]
		if c < 0 || c >= k {
			return 0, invalidArgument("label %d of row %d out of range [0, %d)", c, i, k)
		}
		if len(row) != len(next[c]) {
			return 0, &ErrDimensionMismatch{Expected: len(next[c]), Actual: len(row)}
		}
		counts[c]++
		floats.Add(next[c], row)
	}

	var empty []int
	for c := range next {
		if counts[c] == 0 {
			empty = append(empty, c)
			continue
		}
		floats.Scale(1/float64(counts[c]), next[c])
		for j, v := range next[c] {
			if !isFinite(v) {
				return 0, numericInstability("mean of cluster %d, feature %d is %v", c, j, v)
			}
		}
	}

	if len(empty) == 0 {
		return 0, nil
	}

	if policy == KeepPrevious {
		for _, c := range empty {
			copy(next[c], prev[c])
		}
		return len(empty), nil
	}

	placed := make([][]float64, 0, k)
	for c := range next {
		if counts[c] > 0 {
			placed = append(placed, next[c])
		}
	}
	for _, c := range empty {
		row := farthestRow(rows, placed)
		if row < 0 {
			copy(next[c], prev[c])
		} else {
			copy(next[c], rows[row])
		}
		placed = append(placed, next[c])
	}
	return len(empty), nil
}

// farthestRow returns the row with the largest squared distance to its
// nearest entry in placed, or -1 if that distance is zero for every row.
func farthestRow(rows, placed [][]float64) int {
	best := -1
	bestDist := 0.0
	for i, row := range rows {
		_, d := distance.Nearest(row, placed)
		if d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
