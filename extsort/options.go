package extsort

import (
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/ggca/internal/fs"
	"github.com/hupe1980/ggca/internal/resource"
)

// DefaultBufferSize is the default number of records kept in memory per run.
const DefaultBufferSize = 1 << 20

// DefaultMaxOpenChunks is the default merge fan-in.
const DefaultMaxOpenChunks = 128

// Compression selects the streaming codec wrapped around chunk files.
type Compression uint8

const (
	// CompressionNone writes framed records as-is.
	CompressionNone Compression = iota
	// CompressionLZ4 wraps chunk files in an LZ4 frame (fast).
	CompressionLZ4
	// CompressionZSTD wraps chunk files in a ZSTD stream (better ratio).
	CompressionZSTD
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

type options struct {
	bufferSize    int
	maxOpenChunks int
	tempDir       string
	compression   Compression
	fs            fs.FileSystem
	rc            *resource.Controller
	logger        *slog.Logger
}

// Option configures a Sorter.
type Option func(*options)

// WithBufferSize sets the number of records buffered before a spill.
// Values below 1 become 1.
func WithBufferSize(records int) Option {
	return func(o *options) {
		o.bufferSize = max(1, records)
	}
}

// WithMaxOpenChunks caps the number of chunk files a merge reads at once.
// Larger spills are merged in several passes. Values below 2 become 2.
func WithMaxOpenChunks(n int) Option {
	return func(o *options) {
		o.maxOpenChunks = max(2, n)
	}
}

// WithTempDir sets the parent directory of the private chunk directory.
// Empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithCompression sets the chunk file compression.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithFileSystem replaces the file system used for chunk files.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithResource rate-limits chunk IO through rc.
func WithResource(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger for spill events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		bufferSize:    DefaultBufferSize,
		maxOpenChunks: DefaultMaxOpenChunks,
		tempDir:       os.TempDir(),
		fs:            fs.Default,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.tempDir == "" {
		o.tempDir = os.TempDir()
	}
	return o
}
