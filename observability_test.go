package kmeans_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/kmeans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLogger_RunRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := kmeans.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := kmeans.Cluster(context.Background(), fourPoints(), 2,
		kmeans.WithSeed(1), kmeans.WithLogger(logger))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "clustering completed", rec["msg"])
	assert.Equal(t, "converged", rec["status"])
	assert.Equal(t, float64(2), rec["k"])
	assert.Equal(t, float64(2), rec["dimension"])
	assert.Equal(t, float64(4), rec["count"])
	assert.Equal(t, float64(1), rec["seed"])
}

func TestLogger_IterationsThrottled(t *testing.T) {
	var buf bytes.Buffer
	logger := kmeans.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	x := mat.NewDense(6, 1, []float64{0, 1, 2, 3, 4, 100})
	res, err := kmeans.Cluster(context.Background(), x, 2,
		kmeans.WithSeed(2), kmeans.WithLogger(logger))
	require.NoError(t, err)

	logged := strings.Count(buf.String(), "msg=iteration")
	assert.Positive(t, logged)
	assert.LessOrEqual(t, logged, res.Iterations)
	assert.LessOrEqual(t, logged, 3)
}

func TestLogger_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := kmeans.NewLogger(slog.NewTextHandler(&buf, nil))

	_, err := kmeans.Cluster(context.Background(), fourPoints(), 7, kmeans.WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "clustering failed")
}

func TestNoopLogger(t *testing.T) {
	l := kmeans.NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &kmeans.BasicMetricsCollector{}
	x := mat.NewDense(4, 1, []float64{0, 1, 2, 10})

	res, err := kmeans.Cluster(context.Background(), x, 3,
		kmeans.WithInitialCentroids(mat.NewDense(3, 1, []float64{0, 1, 100})),
		kmeans.WithMetricsCollector(m))
	require.NoError(t, err)

	_, err = kmeans.Cluster(context.Background(), x, 0, kmeans.WithMetricsCollector(m))
	require.Error(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.ConvergedCount)
	assert.Equal(t, int64(0), stats.MaxItersCount)
	assert.Equal(t, int64(res.Iterations), stats.IterationCount)
	assert.Equal(t, int64(2), stats.EmptyClusterCount)
	assert.Equal(t, res.History[len(res.History)-1].Inertia, stats.LastInertia)
}

func TestNilObservabilityOptions(t *testing.T) {
	_, err := kmeans.Cluster(context.Background(), fourPoints(), 2,
		kmeans.WithSeed(1), kmeans.WithLogger(nil), kmeans.WithMetricsCollector(nil))
	require.NoError(t, err)
}

func TestLogger_InvalidMatrix(t *testing.T) {
	var buf bytes.Buffer
	logger := kmeans.NewLogger(slog.NewTextHandler(&buf, nil))
	m := &kmeans.BasicMetricsCollector{}

	_, err := kmeans.Cluster(context.Background(), nil, 2,
		kmeans.WithLogger(logger), kmeans.WithMetricsCollector(m))
	require.ErrorIs(t, err, kmeans.ErrInvalidArgument)

	assert.Contains(t, buf.String(), "clustering failed")
	assert.Contains(t, buf.String(), "k=2")
	assert.Equal(t, int64(1), m.GetStats().RunErrors)
}

func TestLogger_BestOfStart(t *testing.T) {
	var buf bytes.Buffer
	logger := kmeans.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rc := kmeans.NewResourceController(kmeans.ResourceLimits{MaxWorkers: 2})

	_, err := kmeans.BestOf(context.Background(), fourPoints(), 2, 3,
		kmeans.WithSeed(4), kmeans.WithLogger(logger), kmeans.WithResourceController(rc))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="starting restarts" restarts=3 base_seed=4 max_workers=2`)
	assert.Equal(t, 3, strings.Count(out, `msg="restart completed"`))
}
