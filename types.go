package kmeans

import (
	"fmt"

	"github.com/hupe1980/kmeans/internal/lloyd"
	"github.com/hupe1980/kmeans/internal/resource"
	"github.com/hupe1980/kmeans/rng"
)

// RandomSource supplies the random draws of k-means++ seeding.
type RandomSource = rng.Source

// IterationStats describes one assignment/update iteration.
type IterationStats = lloyd.IterationStats

// EmptyClusterPolicy selects how a cluster that received no points is
// resolved.
type EmptyClusterPolicy = lloyd.EmptyClusterPolicy

const (
	// ReseedFarthestPoint moves each empty cluster, in ascending index
	// order, onto the point farthest from its nearest centroid.
	ReseedFarthestPoint = lloyd.ReseedFarthestPoint
	// KeepPrevious leaves an empty cluster at its previous centroid.
	KeepPrevious = lloyd.KeepPrevious
)

// ResourceController bounds the memory and concurrency of clustering runs.
// Share one controller between calls to enforce a global limit.
type ResourceController = resource.Controller

// ResourceLimits configures a ResourceController.
type ResourceLimits = resource.Config

// NewResourceController creates a ResourceController.
func NewResourceController(limits ResourceLimits) *ResourceController {
	return resource.NewController(limits)
}

// Status is the terminal state of a clustering run.
type Status int

const (
	// StatusConverged means the centroid shift fell within the tolerance.
	StatusConverged Status = iota + 1
	// StatusMaxItersReached means the iteration cap was hit first.
	StatusMaxItersReached
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxItersReached:
		return "max_iters_reached"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

func statusOf(state lloyd.State) Status {
	if state == lloyd.StateConverged {
		return StatusConverged
	}
	return StatusMaxItersReached
}
