package kmeans

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordRun is called after each Cluster call.
	// status is only meaningful when err is nil.
	RecordRun(status Status, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each assignment/update iteration.
	RecordIteration(iteration int, inertia, shift float64)

	// RecordEmptyCluster is called once for every cluster that received no
	// points during an iteration.
	RecordEmptyCluster(policy EmptyClusterPolicy)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Status, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, float64, float64)      {}
func (NoopMetricsCollector) RecordEmptyCluster(EmptyClusterPolicy)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount          atomic.Int64
	RunErrors         atomic.Int64
	ConvergedCount    atomic.Int64
	MaxItersCount     atomic.Int64
	RunTotalNanos     atomic.Int64
	IterationCount    atomic.Int64
	EmptyClusterCount atomic.Int64
	lastInertia       atomic.Uint64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(status Status, iterations int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch status {
	case StatusConverged:
		b.ConvergedCount.Add(1)
	case StatusMaxItersReached:
		b.MaxItersCount.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(iteration int, inertia, shift float64) {
	b.IterationCount.Add(1)
	b.lastInertia.Store(math.Float64bits(inertia))
}

// RecordEmptyCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmptyCluster(EmptyClusterPolicy) {
	b.EmptyClusterCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       b.getAvgRunNanos(),
		ConvergedCount:    b.ConvergedCount.Load(),
		MaxItersCount:     b.MaxItersCount.Load(),
		IterationCount:    b.IterationCount.Load(),
		EmptyClusterCount: b.EmptyClusterCount.Load(),
		LastInertia:       math.Float64frombits(b.lastInertia.Load()),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	ConvergedCount    int64
	MaxItersCount     int64
	IterationCount    int64
	EmptyClusterCount int64
	// LastInertia is the inertia reported by the most recent iteration.
	LastInertia float64
}
