// Package distance provides the squared Euclidean distance computations used
// by clustering.
//
// Squared L2 is the only metric: it is the objective Lloyd's algorithm
// minimizes, and comparing squared values preserves the ordering of the true
// Euclidean distance without a square root per pair.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
//	ds := distance.ToSet(nil, x, centroids)      // x against every centroid
//	k, d := distance.Nearest(x, centroids)       // argmin, lowest index on ties
//	m := distance.Pairwise(points, centroids)    // N×K matrix
package distance
