package extsort

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/hupe1980/ggca/codec"
)

// Sorter sorts record streams with a bounded in-memory buffer.
// A Sorter holds no per-sort state and may run several sorts concurrently.
type Sorter[T any] struct {
	cmp   func(a, b T) int
	codec codec.Codec[T]
	opts  options
}

// New creates a Sorter ordering records by cmp and spilling them with c.
func New[T any](cmp func(a, b T) int, c codec.Codec[T], optFns ...Option) *Sorter[T] {
	return &Sorter[T]{
		cmp:   cmp,
		codec: c,
		opts:  applyOptions(optFns),
	}
}

// Sort consumes seq and returns its records in ascending order. On error every
// file written so far is removed and the result is nil.
//
// When more chunks were spilled than the merge may keep open, consecutive
// groups of chunks are merged into intermediate chunks until the final merge
// fits.
func (s *Sorter[T]) Sort(ctx context.Context, seq iter.Seq2[T, error]) (*Result[T], error) {
	res := &Result[T]{
		ctx:   ctx,
		cmp:   s.cmp,
		codec: s.codec,
		opts:  s.opts,
	}
	if err := s.fill(ctx, res, seq); err != nil {
		return nil, errors.Join(err, res.Close())
	}
	if err := res.compact(); err != nil {
		return nil, errors.Join(err, res.Close())
	}
	return res, nil
}

func (s *Sorter[T]) fill(ctx context.Context, res *Result[T], seq iter.Seq2[T, error]) error {
	buf := make([]T, 0, min(s.opts.bufferSize, 4096))
	var scratch []byte

	for v, err := range seq {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		buf = append(buf, v)
		if len(buf) < s.opts.bufferSize {
			continue
		}
		slices.SortStableFunc(buf, s.cmp)
		if scratch, err = res.spill(buf, scratch); err != nil {
			return err
		}
		clear(buf)
		buf = buf[:0]
	}

	slices.SortStableFunc(buf, s.cmp)
	res.tail = buf
	return nil
}

// Result is a sorted view over the resident run and the spilled chunks.
// It must be closed to remove spilled files.
type Result[T any] struct {
	ctx   context.Context
	cmp   func(a, b T) int
	codec codec.Codec[T]
	opts  options

	dir     string
	chunks  []string // live runs in spill order
	created int
	spilled int
	passes  int
	bytes   int64
	tail    []T
}

// Spilled returns the number of chunk files written from the input buffer.
// Intermediate chunks of merge passes are not counted.
func (r *Result[T]) Spilled() int { return r.spilled }

// SpilledBytes returns the framed, uncompressed size of all spilled chunks.
func (r *Result[T]) SpilledBytes() int64 { return r.bytes }

// Resident returns the number of records held in memory.
func (r *Result[T]) Resident() int { return len(r.tail) }

// MergePasses returns the number of intermediate merge passes Sort ran.
func (r *Result[T]) MergePasses() int { return r.passes }

func (r *Result[T]) newChunk() (*chunkWriter, error) {
	if r.dir == "" {
		dir, err := r.opts.fs.MkdirTemp(r.opts.tempDir, "ggca-sort-*")
		if err != nil {
			return nil, fmt.Errorf("extsort: create temp dir: %w", err)
		}
		r.dir = dir
	}
	path := filepath.Join(r.dir, fmt.Sprintf("chunk-%06d.run", r.created))
	r.created++
	return createChunk(r.ctx, r.opts.fs, path, r.opts.compression, r.opts.rc)
}

func (r *Result[T]) put(cw *chunkWriter, v T, scratch []byte) ([]byte, error) {
	scratch, err := r.codec.Append(scratch[:0], v)
	if err != nil {
		return scratch, &ChunkError{Path: cw.path, Record: cw.records, Err: fmt.Errorf("encode: %w", err)}
	}
	return scratch, cw.write(scratch)
}

func (r *Result[T]) spill(sorted []T, scratch []byte) ([]byte, error) {
	cw, err := r.newChunk()
	if err != nil {
		return scratch, err
	}
	r.chunks = append(r.chunks, cw.path)

	for _, v := range sorted {
		if scratch, err = r.put(cw, v, scratch); err != nil {
			_ = cw.close()
			return scratch, err
		}
	}
	if err := cw.close(); err != nil {
		return scratch, err
	}
	r.spilled++
	r.bytes += cw.bytes

	r.opts.logger.DebugContext(r.ctx, "spilled sort chunk",
		slog.String("path", cw.path),
		slog.Int("records", len(sorted)),
		slog.Int64("bytes", cw.bytes),
		slog.String("compression", r.opts.compression.String()),
	)
	return scratch, nil
}

// compact runs merge passes until at most maxOpenChunks chunks remain.
// Each pass replaces consecutive groups of chunks by one merged chunk, so the
// run order and therefore the tie order is preserved.
func (r *Result[T]) compact() error {
	fanIn := r.opts.maxOpenChunks
	var scratch []byte
	for len(r.chunks) > fanIn {
		r.passes++
		merged := make([]string, 0, (len(r.chunks)+fanIn-1)/fanIn)
		for start := 0; start < len(r.chunks); start += fanIn {
			group := r.chunks[start:min(start+fanIn, len(r.chunks))]
			if len(group) == 1 {
				merged = append(merged, group[0])
				continue
			}
			path, err := r.mergeGroup(group, &scratch)
			if err != nil {
				// keep every path reachable for Close
				r.chunks = append(merged, r.chunks[start:]...)
				return err
			}
			merged = append(merged, path)
		}
		r.chunks = merged

		r.opts.logger.DebugContext(r.ctx, "merged sort chunks",
			slog.Int("pass", r.passes),
			slog.Int("chunks", len(r.chunks)),
			slog.Int("fan_in", fanIn),
		)
	}
	return nil
}

// mergeGroup merges the chunks in group into a new chunk and removes them.
func (r *Result[T]) mergeGroup(group []string, scratch *[]byte) (string, error) {
	runs, closeRuns, err := r.openRuns(group)
	if err != nil {
		return "", err
	}

	cw, err := r.newChunk()
	if err != nil {
		return "", errors.Join(err, closeRuns())
	}

	var werr error
	err = mergeRuns(r.ctx, r.cmp, runs, func(v T) bool {
		*scratch, werr = r.put(cw, v, *scratch)
		return werr == nil
	})
	if err := errors.Join(err, werr, cw.close(), closeRuns()); err != nil {
		_ = r.opts.fs.Remove(cw.path)
		return "", err
	}

	var errs []error
	for _, path := range group {
		errs = append(errs, r.opts.fs.Remove(path))
	}
	return cw.path, errors.Join(errs...)
}

// All yields every record in ascending order. Records that compare equal are
// yielded in input order. Each call starts a fresh merge.
func (r *Result[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if len(r.chunks) == 0 {
			for _, v := range r.tail {
				if !yield(v, nil) {
					return
				}
			}
			return
		}

		runs, closeRuns, err := r.openRuns(r.chunks)
		if err != nil {
			yield(zero, err)
			return
		}
		defer func() { _ = closeRuns() }()

		// The resident tail is the last run.
		runs = append(runs, &sliceRun[T]{items: r.tail})
		stopped := false
		err = mergeRuns(r.ctx, r.cmp, runs, func(v T) bool {
			stopped = !yield(v, nil)
			return !stopped
		})
		if err != nil && !stopped {
			yield(zero, err)
		}
	}
}

// Close removes every chunk file and the private temporary directory.
// It is safe to call more than once, and on a nil Result.
func (r *Result[T]) Close() error {
	if r == nil || r.dir == "" {
		return nil
	}
	var errs []error
	for _, path := range r.chunks {
		if err := r.opts.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := r.opts.fs.RemoveAll(r.dir); err != nil {
		errs = append(errs, err)
	}
	r.dir = ""
	r.chunks = nil
	r.tail = nil
	return errors.Join(errs...)
}
