package engine

import (
	"io"
	"log/slog"

	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/extsort"
	"github.com/hupe1980/ggca/internal/fs"
	"github.com/hupe1980/ggca/internal/resource"
)

// Config holds the parameters of one run.
type Config struct {
	Correlation correlation.Method
	// Threshold keeps pairs with |coefficient| >= Threshold.
	Threshold  float64
	Adjustment adjustment.Method

	// SortBufferSize is the number of results held in memory per sort run.
	// If 0, defaults to extsort.DefaultBufferSize.
	SortBufferSize int
	// MaxOpenChunks caps the merge fan-in of the sort.
	// If 0, defaults to extsort.DefaultMaxOpenChunks.
	MaxOpenChunks  int
	TempDir        string
	Compression    extsort.Compression
	FileSystem     fs.FileSystem

	// BatchRows is the number of outer rows scored per parallel batch.
	// If 0, defaults to four times the worker count.
	BatchRows int

	Resource *resource.Controller
	Logger   *slog.Logger
	Metrics  MetricsObserver
}

func (c Config) withDefaults() Config {
	if c.SortBufferSize <= 0 {
		c.SortBufferSize = extsort.DefaultBufferSize
	}
	if c.MaxOpenChunks <= 0 {
		c.MaxOpenChunks = extsort.DefaultMaxOpenChunks
	}
	if c.FileSystem == nil {
		c.FileSystem = fs.Default
	}
	if c.Resource == nil {
		c.Resource = resource.NewController(resource.Config{})
	}
	if c.BatchRows <= 0 {
		c.BatchRows = 4 * c.Resource.Workers()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Metrics == nil {
		c.Metrics = NoopMetricsObserver{}
	}
	return c
}

func (c Config) sortOptions() []extsort.Option {
	return []extsort.Option{
		extsort.WithBufferSize(c.SortBufferSize),
		extsort.WithMaxOpenChunks(c.MaxOpenChunks),
		extsort.WithTempDir(c.TempDir),
		extsort.WithCompression(c.Compression),
		extsort.WithFileSystem(c.FileSystem),
		extsort.WithResource(c.Resource),
		extsort.WithLogger(c.Logger),
	}
}
