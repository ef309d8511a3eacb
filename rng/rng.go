package rng

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidWeights is returned by WeightedChoice when the weights do not
// describe a probability distribution.
var ErrInvalidWeights = errors.New("invalid sampling weights")

// streamConstant selects the PCG stream. Fixed so that a seed alone
// determines the sequence.
const streamConstant = 0x9e3779b97f4a7c15

// Source supplies the random draws needed by seeding.
type Source interface {
	// UniformInt returns an integer uniformly distributed in [0, n).
	// It panics if n <= 0.
	UniformInt(n int) int

	// WeightedChoice returns an index in [0, len(weights)) drawn with
	// probability proportional to its weight. Entries with zero weight are
	// never returned.
	WeightedChoice(weights []float64) (int, error)
}

// PCG is a Source backed by a PCG generator.
// It is safe for concurrent use.
type PCG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed uint64
	cum  []float64
}

// New creates a PCG source with the given seed.
func New(seed uint64) *PCG {
	return &PCG{
		rand: rand.New(rand.NewPCG(seed, streamConstant)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// UniformInt implements Source.
func (p *PCG) UniformInt(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rand.IntN(n)
}

// WeightedChoice implements Source.
func (p *PCG) WeightedChoice(weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: empty weight vector", ErrInvalidWeights)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, i, w)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cap(p.cum) < len(weights) {
		p.cum = make([]float64, len(weights))
	}
	cum := floats.CumSum(p.cum[:len(weights)], weights)

	total := cum[len(cum)-1]
	if !(total > 0) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: total weight is %v", ErrInvalidWeights, total)
	}

	target := p.rand.Float64() * total
	// First index whose cumulative weight exceeds the target. Zero-weight
	// entries share the cumulative value of their predecessor and are skipped.
	idx := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
	if idx == len(cum) {
		// target rounded up to total; take the last positive weight.
		idx = len(cum) - 1
		for weights[idx] == 0 {
			idx--
		}
	}
	return idx, nil
}
