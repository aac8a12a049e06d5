package matrix

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/hupe1980/ggca/blobstore"
)

// Source is a re-openable matrix input. Every Open starts a fresh pass.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource returns a Source reading the local file at path.
func FileSource(path string) Source {
	return fileSource(path)
}

type fileSource string

func (s fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(string(s))
}

func (s fileSource) Name() string { return string(s) }

// BlobSource returns a Source streaming the blob name out of store.
func BlobSource(store blobstore.BlobStore, name string) Source {
	return &blobSource{store: store, name: name}
}

type blobSource struct {
	store blobstore.BlobStore
	name  string
}

func (s *blobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return blobstore.OpenReader(ctx, s.store, s.name)
}

func (s *blobSource) Name() string { return s.name }

// BlobSources returns one Source per blob under prefix, in name order.
func BlobSources(ctx context.Context, store blobstore.BlobStore, prefix string) ([]Source, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("matrix: list %q: %w", prefix, err)
	}
	srcs := make([]Source, len(names))
	for i, name := range names {
		srcs[i] = BlobSource(store, name)
	}
	return srcs, nil
}

// Load opens src and streams its rows. The source is closed when the
// sequence ends or the consumer stops early.
func Load(ctx context.Context, src Source) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		rc, err := src.Open(ctx)
		if err != nil {
			yield(Row{}, fmt.Errorf("matrix: open %s: %w", src.Name(), err))
			return
		}
		defer rc.Close()

		for row, err := range Read(rc) {
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				yield(Row{}, fmt.Errorf("matrix: read %s: %w", src.Name(), err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Inspect re-opens src and measures its shape.
func Inspect(ctx context.Context, src Source) (Shape, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return Shape{}, fmt.Errorf("matrix: open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	shape, err := Measure(rc)
	if err != nil {
		return Shape{}, fmt.Errorf("matrix: inspect %s: %w", src.Name(), err)
	}
	return shape, nil
}
