package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.UniformPoints(8, 3)

	assert.Len(t, p, 8)
	assert.Len(t, p[0], 3)
	for _, row := range p {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)

	centers := [][]float64{{0, 0}, {100, 100}}
	points, truth := rng.Blobs(centers, 10, 0.5)

	assert.Len(t, points, 20)
	assert.Len(t, truth, 20)
	for i, p := range points {
		c := centers[truth[i]]
		assert.InDelta(t, c[0], p[0], 5)
		assert.InDelta(t, c[1], p[1], 5)
	}
}

func TestDeterministic(t *testing.T) {
	a := NewRNG(1).UniformPoints(4, 2)
	b := NewRNG(1).UniformPoints(4, 2)
	assert.Equal(t, a, b)
}

func TestMatrix(t *testing.T) {
	m := Matrix([][]float64{{1, 2}, {3, 4}, {5, 6}})
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, m.At(1, 1))

	assert.Nil(t, Matrix(nil))
}

func TestSameClustering(t *testing.T) {
	assert.True(t, SameClustering([]int{0, 0, 1, 2}, []int{2, 2, 0, 1}))
	assert.False(t, SameClustering([]int{0, 0, 1}, []int{0, 1, 1}))
	assert.False(t, SameClustering([]int{0, 1}, []int{0, 0}))
	assert.False(t, SameClustering([]int{0}, []int{0, 1}))
}
