package kmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count (number of points) field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, status Status, iterations int, inertia float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
			"elapsed", elapsed,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"status", status.String(),
		"iterations", iterations,
		"inertia", inertia,
		"elapsed", elapsed,
	)
}

// LogRestart logs the outcome of one BestOf restart.
func (l *Logger) LogRestart(ctx context.Context, restart int, seed uint64, inertia float64, err error) {
	if err != nil {
		l.WarnContext(ctx, "restart failed",
			"restart", restart,
			"seed", seed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "restart completed",
		"restart", restart,
		"seed", seed,
		"inertia", inertia,
	)
}

func (l *Logger) logIteration(ctx context.Context, s IterationStats) {
	l.DebugContext(ctx, "iteration",
		"iteration", s.Iteration,
		"inertia", s.Inertia,
		"shift", s.Shift,
		"empty_clusters", s.EmptyClusters,
	)
}
