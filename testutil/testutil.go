package testutil

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// RNG struct encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
	}
}

// UniformPoints generates num points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// Blobs generates perCenter points around each center with Gaussian noise of
// the given standard deviation. Points are emitted center by center; truth
// holds the generating center of each point.
func (r *RNG) Blobs(centers [][]float64, perCenter int, stddev float64) (points [][]float64, truth []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	points = make([][]float64, 0, len(centers)*perCenter)
	truth = make([]int, 0, len(centers)*perCenter)
	for c, center := range centers {
		for range perCenter {
			p := make([]float64, len(center))
			for j, v := range center {
				p[j] = v + r.rand.NormFloat64()*stddev
			}
			points = append(points, p)
			truth = append(truth, c)
		}
	}
	return points, truth
}

// Shuffle permutes points and truth together.
func (r *RNG) Shuffle(points [][]float64, truth []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rand.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
		if truth != nil {
			truth[i], truth[j] = truth[j], truth[i]
		}
	})
}

// Matrix copies rows into a dense matrix.
func Matrix(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

// SameClustering reports whether two labelings partition the points
// identically up to a renaming of cluster indices.
func SameClustering(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	forward := make(map[int]int)
	backward := make(map[int]int)
	for i := range a {
		if v, ok := forward[a[i]]; ok && v != b[i] {
			return false
		}
		if v, ok := backward[b[i]]; ok && v != a[i] {
			return false
		}
		forward[a[i]] = b[i]
		backward[b[i]] = a[i]
	}
	return true
}
