package ggca

import (
	"log/slog"

	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/extsort"
)

type options struct {
	correlation      correlation.Method
	threshold        float64
	sortBufferSize   int
	maxOpenChunks    int
	adjustment       adjustment.Method
	tempDir          string
	compression      extsort.Compression
	workers          int
	memoryLimit      int64
	spillIOLimit     int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Correlate call.
type Option func(*options)

// WithCorrelation selects the correlation method. Defaults to Pearson.
func WithCorrelation(m correlation.Method) Option {
	return func(o *options) {
		o.correlation = m
	}
}

// WithThreshold keeps only pairs whose coefficient satisfies
// |coefficient| >= threshold. Filtered pairs still count towards the
// hypothesis total and keep their rank. Defaults to 0 (keep everything).
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithSortBufferSize sets how many results the external sort holds in memory
// before spilling a chunk to disk. Defaults to extsort.DefaultBufferSize.
//
// Values below 1 are treated as 1 (one chunk per result). The sort only runs
// for Benjamini-Hochberg and Benjamini-Yekutieli.
func WithSortBufferSize(records int) Option {
	return func(o *options) {
		o.sortBufferSize = max(1, records)
	}
}

// WithMaxOpenChunks caps how many spilled chunk files the external sort
// reads at once. Larger spills are merged in several passes. Defaults to
// extsort.DefaultMaxOpenChunks; values below 2 are treated as 2.
func WithMaxOpenChunks(n int) Option {
	return func(o *options) {
		o.maxOpenChunks = max(2, n)
	}
}

// WithAdjustment selects the multiple-testing correction. Defaults to
// Bonferroni.
func WithAdjustment(m adjustment.Method) Option {
	return func(o *options) {
		o.adjustment = m
	}
}

// WithTempDir sets the parent directory for spilled sort chunks.
// Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithCompression compresses spilled sort chunks.
//
// Recommended values:
//   - extsort.CompressionNone: fast local disks (default)
//   - extsort.CompressionLZ4: slow or small disks, negligible CPU cost
//   - extsort.CompressionZSTD: very large spills where disk space matters most
func WithCompression(c extsort.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithWorkers sets the number of concurrent scoring workers.
// If workers <= 0, GOMAXPROCS is used.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithMemoryLimit bounds the memory charged for the materialized matrix.
// If set to 0, memory is unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithSpillIOLimit rate-limits chunk file reads and writes to bytesPerSec.
// If set to 0, IO is unlimited.
func WithSpillIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.spillIOLimit = bytesPerSec
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ggca.BasicMetricsCollector{}
//	results, _ := ggca.CorrelateFiles(ctx, a, b, ggca.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Pairs: %d, Spilled chunks: %d\n", stats.ScoredPairs, stats.SpilledChunks)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ggca.NewJSONLogger(slog.LevelInfo)
//	results, _ := ggca.CorrelateFiles(ctx, a, b, ggca.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		correlation:      correlation.Pearson,
		sortBufferSize:   extsort.DefaultBufferSize,
		maxOpenChunks:    extsort.DefaultMaxOpenChunks,
		adjustment:       adjustment.Bonferroni,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
