package extsort

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/ggca/codec"
)

// run is a pull cursor over one sorted run. ok is false once the run is
// exhausted.
type run[T any] interface {
	next() (v T, ok bool, err error)
}

// sliceRun reads the resident in-memory run.
type sliceRun[T any] struct {
	items []T
	pos   int
}

func (s *sliceRun[T]) next() (T, bool, error) {
	if s.pos == len(s.items) {
		var zero T
		return zero, false, nil
	}
	v := s.items[s.pos]
	s.pos++
	return v, true, nil
}

// chunkRun decodes records out of one chunk file.
type chunkRun[T any] struct {
	cr    *chunkReader
	codec codec.Codec[T]
}

func (c *chunkRun[T]) next() (T, bool, error) {
	var zero T
	payload, ok, err := c.cr.next()
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		return zero, false, &ChunkError{Path: c.cr.path, Record: c.cr.record - 1, Err: fmt.Errorf("decode: %w", err)}
	}
	return v, true, nil
}

// openRuns opens one cursor per chunk path, in order. The returned closer
// releases every reader; on error nothing stays open.
func (r *Result[T]) openRuns(paths []string) ([]run[T], func() error, error) {
	readers := make([]*chunkReader, 0, len(paths))
	closeAll := func() error {
		var errs []error
		for _, cr := range readers {
			errs = append(errs, cr.close())
		}
		return errors.Join(errs...)
	}

	runs := make([]run[T], 0, len(paths)+1)
	for _, path := range paths {
		cr, err := openChunk(r.ctx, r.opts.fs, path, r.opts.compression, r.opts.rc)
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		readers = append(readers, cr)
		runs = append(runs, &chunkRun[T]{cr: cr, codec: r.codec})
	}
	return runs, closeAll, nil
}

// mergeRuns yields the records of runs in ascending order. Equal records come
// from the lower run index first. It stops without error when yield returns
// false.
func mergeRuns[T any](ctx context.Context, cmp func(a, b T) int, runs []run[T], yield func(T) bool) error {
	h := newMergeHeap(cmp, len(runs))
	for i, rn := range runs {
		v, ok, err := rn.next()
		if err != nil {
			return err
		}
		if ok {
			h.push(head[T]{value: v, run: i})
		}
	}

	for {
		top, ok := h.top()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !yield(top.value) {
			return nil
		}
		v, ok, err := runs[top.run].next()
		if err != nil {
			return err
		}
		if ok {
			h.replaceTop(v)
		} else {
			h.pop()
		}
	}
}
