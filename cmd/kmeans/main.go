// Command kmeans clusters the rows of a CSV table.
//
//	kmeans -input students.csv -k 3 -columns raisedhands,Discussion
//
// The input may be gzip, zstd or lz4 compressed and may live on the local
// file system, in S3 or in MinIO.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
	kminio "github.com/hupe1980/kmeans/blobstore/minio"
	"github.com/hupe1980/kmeans/blobstore/s3"
	"github.com/hupe1980/kmeans/prommetrics"
	"github.com/hupe1980/kmeans/tabular"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type cliConfig struct {
	input       string
	k           int
	columns     string
	source      string
	bucket      string
	prefix      string
	endpoint    string
	secure      bool
	maxIter     int
	tol         float64
	empty       string
	seed        uint64
	seedSet     bool
	restarts    int
	workers     int
	ioLimit     int64
	logFormat   string
	verbose     bool
	metricsAddr string
	labels      bool
}

func parseFlags(args []string, stderr io.Writer) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet("kmeans", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.input, "input", "", "input table (csv, optionally .gz/.zst/.lz4)")
	fs.IntVar(&cfg.k, "k", 0, "number of clusters")
	fs.StringVar(&cfg.columns, "columns", "", "comma-separated feature columns (default: all)")
	fs.StringVar(&cfg.source, "source", "local", "input source: local, s3 or minio")
	fs.StringVar(&cfg.bucket, "bucket", "", "bucket for s3 and minio sources")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix for s3 and minio sources")
	fs.StringVar(&cfg.endpoint, "endpoint", "localhost:9000", "minio endpoint host:port")
	fs.BoolVar(&cfg.secure, "secure", false, "use TLS for minio")
	fs.IntVar(&cfg.maxIter, "max-iter", kmeans.DefaultMaxIterations, "maximum iterations")
	fs.Float64Var(&cfg.tol, "tol", kmeans.DefaultTolerance, "convergence tolerance on the squared centroid shift")
	fs.StringVar(&cfg.empty, "empty", "reseed", "empty cluster policy: reseed or keep")
	fs.Func("seed", "random seed (default: random)", func(s string) error {
		_, err := fmt.Sscan(s, &cfg.seed)
		cfg.seedSet = err == nil
		return err
	})
	fs.IntVar(&cfg.restarts, "restarts", 1, "independent restarts; the lowest inertia wins")
	fs.IntVar(&cfg.workers, "workers", 0, "concurrent restarts (default: 1)")
	fs.Int64Var(&cfg.ioLimit, "io-limit", 0, "input read limit in bytes per second (0: unlimited)")
	fs.StringVar(&cfg.logFormat, "log", "text", "log format: text or json")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&cfg.labels, "labels", false, "print the label of every input row")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.input == "" {
		return nil, errors.New("-input is required")
	}
	if cfg.k < 1 {
		return nil, errors.New("-k must be at least 1")
	}
	return cfg, nil
}

func (c *cliConfig) policy() (kmeans.EmptyClusterPolicy, error) {
	switch c.empty {
	case "reseed":
		return kmeans.ReseedFarthestPoint, nil
	case "keep":
		return kmeans.KeepPrevious, nil
	default:
		return 0, fmt.Errorf("unknown empty cluster policy %q", c.empty)
	}
}

func (c *cliConfig) logger(stderr io.Writer) (*kmeans.Logger, error) {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.logFormat {
	case "text":
		return kmeans.NewLogger(slog.NewTextHandler(stderr, opts)), nil
	case "json":
		return kmeans.NewLogger(slog.NewJSONHandler(stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.logFormat)
	}
}

func (c *cliConfig) store(ctx context.Context) (blobstore.Store, error) {
	switch c.source {
	case "local":
		return blobstore.NewLocalStore(""), nil
	case "s3":
		if c.bucket == "" {
			return nil, errors.New("-bucket is required for s3")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3.NewStore(awss3.NewFromConfig(awsCfg), c.bucket, c.prefix), nil
	case "minio":
		if c.bucket == "" {
			return nil, errors.New("-bucket is required for minio")
		}
		client, err := minio.New(c.endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: c.secure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return kminio.NewStore(client, c.bucket, c.prefix), nil
	default:
		return nil, fmt.Errorf("unknown source %q", c.source)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	policy, err := cfg.policy()
	if err != nil {
		return err
	}
	logger, err := cfg.logger(stderr)
	if err != nil {
		return err
	}
	store, err := cfg.store(ctx)
	if err != nil {
		return err
	}

	rc := kmeans.NewResourceController(kmeans.ResourceLimits{
		MaxWorkers:         int64(cfg.workers),
		IOLimitBytesPerSec: cfg.ioLimit,
	})

	loadOpts := []tabular.Option{tabular.WithResourceController(rc)}
	if cfg.columns != "" {
		loadOpts = append(loadOpts, tabular.WithColumns(strings.Split(cfg.columns, ",")...))
	}
	tbl, err := tabular.Load(ctx, store, cfg.input, loadOpts...)
	if err != nil {
		return err
	}

	opts := []kmeans.Option{
		kmeans.WithMaxIterations(cfg.maxIter),
		kmeans.WithTolerance(cfg.tol),
		kmeans.WithEmptyClusterPolicy(policy),
		kmeans.WithLogger(logger),
		kmeans.WithResourceController(rc),
	}
	if cfg.seedSet {
		opts = append(opts, kmeans.WithSeed(cfg.seed))
	}

	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector, err := prommetrics.New(reg)
		if err != nil {
			return err
		}
		opts = append(opts, kmeans.WithMetricsCollector(collector))
		stop := serveMetrics(cfg.metricsAddr, reg, logger)
		defer stop()
	}

	res, err := kmeans.BestOf(ctx, tbl.Data, cfg.k, cfg.restarts, opts...)
	if err != nil {
		return err
	}
	printResult(stdout, tbl.Columns, res, cfg.labels)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *kmeans.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func printResult(w io.Writer, columns []string, res *kmeans.Result, labels bool) {
	fmt.Fprintf(w, "status: %s\n", res.Status)
	fmt.Fprintf(w, "iterations: %d\n", res.Iterations)
	fmt.Fprintf(w, "inertia: %g\n", res.Inertia)
	fmt.Fprintf(w, "seed: %d\n", res.Seed)

	fmt.Fprintf(w, "cluster\tsize\t%s\n", strings.Join(columns, "\t"))
	sizes := res.Sizes()
	for k := range res.K() {
		row := res.Centroids.RawRowView(k)
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", k, sizes[k], strings.Join(vals, "\t"))
	}

	if labels {
		fmt.Fprintln(w, "labels:")
		for _, l := range res.Labels {
			fmt.Fprintln(w, l)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "kmeans:", err)
		}
		stop()
		os.Exit(1)
	}
}
