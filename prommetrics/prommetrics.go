// Package prommetrics implements kmeans.MetricsCollector with Prometheus
// counters and histograms.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.New(reg)
//	res, err := kmeans.Cluster(ctx, x, k, kmeans.WithMetricsCollector(c))
package prommetrics

import (
	"errors"
	"time"

	"github.com/hupe1980/kmeans"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements kmeans.MetricsCollector.
type Collector struct {
	runs          *prometheus.CounterVec
	runLatency    *prometheus.HistogramVec
	runIterations prometheus.Histogram
	iterations    prometheus.Counter
	inertia       prometheus.Gauge
	shift         prometheus.Histogram
	emptyClusters *prometheus.CounterVec
}

var _ kmeans.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kmeans_runs_total",
			Help: "Total clustering runs by terminal status",
		}, []string{"status"}),
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kmeans_run_duration_seconds",
			Help:    "Duration of clustering runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		runIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmeans_run_iterations",
			Help:    "Iterations per successful clustering run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_iterations_total",
			Help: "Total assignment/update iterations",
		}),
		inertia: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kmeans_iteration_inertia",
			Help: "Inertia of the most recent iteration",
		}),
		shift: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmeans_iteration_shift",
			Help:    "Total squared centroid shift per iteration",
			Buckets: prometheus.ExponentialBuckets(1e-8, 10, 12),
		}),
		emptyClusters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kmeans_empty_clusters_total",
			Help: "Total empty clusters by resolution policy",
		}, []string{"policy"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var errs []error
	for _, m := range []prometheus.Collector{
		c.runs, c.runLatency, c.runIterations, c.iterations, c.inertia, c.shift, c.emptyClusters,
	} {
		if err := reg.Register(m); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// RecordRun implements kmeans.MetricsCollector.
func (c *Collector) RecordRun(status kmeans.Status, iterations int, duration time.Duration, err error) {
	label := status.String()
	if err != nil {
		label = "error"
	} else {
		c.runIterations.Observe(float64(iterations))
	}
	c.runs.WithLabelValues(label).Inc()
	c.runLatency.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordIteration implements kmeans.MetricsCollector.
func (c *Collector) RecordIteration(iteration int, inertia, shift float64) {
	c.iterations.Inc()
	c.inertia.Set(inertia)
	c.shift.Observe(shift)
}

// RecordEmptyCluster implements kmeans.MetricsCollector.
func (c *Collector) RecordEmptyCluster(policy kmeans.EmptyClusterPolicy) {
	c.emptyClusters.WithLabelValues(policy.String()).Inc()
}
