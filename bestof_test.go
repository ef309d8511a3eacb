package kmeans_test

import (
	"context"
	"testing"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/rng"
	"github.com/hupe1980/kmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBestOf_PicksLowestInertia(t *testing.T) {
	r := testutil.NewRNG(31)
	x := testutil.Matrix(r.UniformPoints(200, 2))
	ctx := context.Background()

	best, err := kmeans.BestOf(ctx, x, 5, 6, kmeans.WithSeed(100))
	require.NoError(t, err)

	for i := range uint64(6) {
		res, err := kmeans.Cluster(ctx, x, 5, kmeans.WithSeed(100+i))
		require.NoError(t, err)
		assert.LessOrEqual(t, best.Inertia, res.Inertia)
	}
	assert.GreaterOrEqual(t, best.Seed, uint64(100))
	assert.Less(t, best.Seed, uint64(106))
}

func TestBestOf_Deterministic(t *testing.T) {
	x, _ := blobs(t, 37)
	rc := kmeans.NewResourceController(kmeans.ResourceLimits{MaxWorkers: 2})

	a, err := kmeans.BestOf(context.Background(), x, 3, 4, kmeans.WithSeed(5), kmeans.WithResourceController(rc))
	require.NoError(t, err)
	b, err := kmeans.BestOf(context.Background(), x, 3, 4, kmeans.WithSeed(5))
	require.NoError(t, err)

	assert.Equal(t, a.Seed, b.Seed)
	assert.Equal(t, a.Labels, b.Labels)
	assert.True(t, mat.Equal(a.Centroids, b.Centroids))
}

func TestBestOf_SingleRestartMatchesCluster(t *testing.T) {
	x, _ := blobs(t, 41)

	a, err := kmeans.BestOf(context.Background(), x, 3, 1, kmeans.WithSeed(12))
	require.NoError(t, err)
	b, err := kmeans.Cluster(context.Background(), x, 3, kmeans.WithSeed(12))
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, b.Inertia, a.Inertia)
}

func TestBestOf_Errors(t *testing.T) {
	ctx := context.Background()
	x := fourPoints()

	_, err := kmeans.BestOf(ctx, x, 2, 0)
	assert.ErrorIs(t, err, kmeans.ErrInvalidArgument)

	_, err = kmeans.BestOf(ctx, x, 2, 3, kmeans.WithRandomSource(rng.New(1)))
	assert.ErrorIs(t, err, kmeans.ErrInvalidArgument)

	_, err = kmeans.BestOf(ctx, x, 9, 3)
	assert.ErrorIs(t, err, kmeans.ErrInvalidArgument)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = kmeans.BestOf(cancelled, x, 2, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestOf_MetricsPerRestart(t *testing.T) {
	m := &kmeans.BasicMetricsCollector{}

	_, err := kmeans.BestOf(context.Background(), fourPoints(), 2, 4,
		kmeans.WithSeed(3), kmeans.WithMetricsCollector(m))
	require.NoError(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(4), stats.RunCount)
	assert.Equal(t, int64(0), stats.RunErrors)
	assert.Equal(t, int64(4), stats.ConvergedCount)
}
