package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCG_Deterministic(t *testing.T) {
	a := New(7)
	b := New(7)

	for range 100 {
		assert.Equal(t, a.UniformInt(1000), b.UniformInt(1000))
	}

	wa, err := a.WeightedChoice([]float64{1, 2, 3})
	require.NoError(t, err)
	wb, err := b.WeightedChoice([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, wa, wb)
}

func TestPCG_Seed(t *testing.T) {
	src := New(99)
	_ = src.UniformInt(50)
	assert.Equal(t, uint64(99), src.Seed())
}

func TestPCG_UniformIntRange(t *testing.T) {
	src := New(1)
	for range 1000 {
		v := src.UniformInt(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestPCG_WeightedChoiceSkipsZeroWeights(t *testing.T) {
	src := New(3)
	weights := []float64{0, 2, 0, 0, 1, 0}

	seen := make(map[int]int)
	for range 5000 {
		idx, err := src.WeightedChoice(weights)
		require.NoError(t, err)
		seen[idx]++
	}

	assert.Len(t, seen, 2)
	assert.Positive(t, seen[1])
	assert.Positive(t, seen[4])
	// weight 2 vs 1: expect roughly two thirds on index 1
	frac := float64(seen[1]) / 5000
	assert.InDelta(t, 2.0/3.0, frac, 0.05)
}

func TestPCG_WeightedChoiceSingle(t *testing.T) {
	src := New(11)
	for range 100 {
		idx, err := src.WeightedChoice([]float64{0, 0, 5})
		require.NoError(t, err)
		assert.Equal(t, 2, idx)
	}
}

func TestPCG_WeightedChoiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
	}{
		{"Empty", nil},
		{"AllZero", []float64{0, 0, 0}},
		{"Negative", []float64{1, -1}},
		{"NaN", []float64{1, math.NaN()}},
		{"Inf", []float64{1, math.Inf(1)}},
	}

	src := New(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.WeightedChoice(tt.weights)
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}
}
