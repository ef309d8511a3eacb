package kmeans

import (
	"github.com/hupe1980/kmeans/internal/resource"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMaxIterations is the iteration cap used when WithMaxIterations
	// is not given.
	DefaultMaxIterations = 300

	// DefaultTolerance is the convergence threshold on the total squared
	// centroid shift used when WithTolerance is not given.
	DefaultTolerance = 1e-8
)

type options struct {
	maxIterations    int
	tolerance        float64
	policy           EmptyClusterPolicy
	seed             uint64
	seedSet          bool
	source           RandomSource
	initial          mat.Matrix
	workers          int
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
}

// Option configures Cluster and BestOf.
type Option func(*options)

func applyOptions(opts []Option) *options {
	o := &options{
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		policy:           ReseedFarthestPoint,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxIterations caps the number of assignment/update iterations.
// Must be at least 1. Default: 300.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the convergence threshold: a run converges once the sum
// of squared centroid displacements of an iteration is at most tol.
// A tolerance of 0 requires the centroids to stop moving exactly.
// Default: 1e-8.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithEmptyClusterPolicy selects how clusters without points are resolved.
// Default: ReseedFarthestPoint.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithSeed fixes the seed of the random source used for k-means++ seeding.
// For BestOf it is the base seed; restart i uses seed+i.
//
// Without it a fresh seed is drawn and reported in Result.Seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithRandomSource replaces the default PCG source. It takes precedence
// over WithSeed. Not supported by BestOf, which derives one source per
// restart.
func WithRandomSource(src RandomSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithInitialCentroids skips seeding and starts from the given K×D
// centroids. The matrix is copied.
func WithInitialCentroids(c mat.Matrix) Option {
	return func(o *options) {
		o.initial = c
	}
}

// WithWorkers bounds the goroutines used by an assignment pass.
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithResourceController bounds memory and concurrency. Each run reserves
// its workspace from the controller's memory limit and each BestOf restart
// occupies one worker slot.
//
// A nil controller imposes no limits.
func WithResourceController(c *ResourceController) Option {
	return func(o *options) {
		o.controller = c
	}
}
