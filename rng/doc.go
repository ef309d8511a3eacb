// Package rng provides the explicitly seeded random sources used by k-means++
// seeding.
//
// There is no package-level generator. Every clustering run constructs (or is
// handed) its own Source, which makes runs reproducible for a given seed and
// lets independent runs execute concurrently without sharing state.
//
//	src := rng.New(42)
//	i := src.UniformInt(10)                     // uniform in [0, 10)
//	j, err := src.WeightedChoice([]float64{0, 1, 3}) // 1 w.p. 1/4, 2 w.p. 3/4
package rng
