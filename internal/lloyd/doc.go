// Package lloyd implements k-means clustering: k-means++ seeding followed by
// Lloyd's alternating assignment/update iterations.
//
// The phases are exposed individually so they can be tested in isolation:
//
//	PlusPlus   rows, K, source    -> initial centroids
//	Assign     rows, centroids    -> labels, distances
//	Update     rows, labels       -> next centroids (empty cluster policy applied)
//	Converged  prev, next, tol    -> stop?
//	Run        orchestrates the above until convergence or the iteration cap
//
// Rows and centroids are [][]float64 and are never retained past a call,
// except for the centroid buffers Run allocates and returns.
package lloyd
