// Package testutil provides deterministic data generators for clustering
// tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(1000, 4)              // uniform [0, 1)
//	points, truth := rng.Blobs(centers, 50, 0.1)      // Gaussian blobs
//	X := testutil.Matrix(points)                      // *mat.Dense view
package testutil
