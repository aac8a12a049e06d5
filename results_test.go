package ggca_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ggca"
	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/blobstore"
	"github.com/hupe1980/ggca/matrix"
)

func TestWriteResults(t *testing.T) {
	results := []ggca.Result{
		{First: "g1", Second: "h1", Correlation: 0.5, PValue: 0.01, AdjustedPValue: 0.04, Adjusted: true},
		{First: "g2", Second: "h1", Correlation: -1, PValue: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, ggca.WriteResults(&buf, results))
	assert.Equal(t, "g1\th1\t0.5\t0.01\t0.04\ng2\th1\t-1\t0\t\n", buf.String())

	buf.Reset()
	require.NoError(t, ggca.WriteResults(&buf, nil))
	assert.Empty(t, buf.String())
}

type failingStore struct {
	blobstore.BlobStore
}

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("read-only") }

func TestPutResults(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "in/genes.tsv", []byte("g1\t1\t2\t3\ng2\t3\t1\t2\n")))
	require.NoError(t, store.Put(ctx, "in/mirna.tsv", []byte("h1\t1\t2\t3\n")))

	srcs, err := matrix.BlobSources(ctx, store, "in/")
	require.NoError(t, err)
	require.Len(t, srcs, 2)

	results, err := ggca.Correlate(ctx, srcs[0], srcs[1], ggca.WithAdjustment(adjustment.BenjaminiHochberg))
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NoError(t, ggca.PutResults(ctx, store, "out/results.tsv", results))

	rc, err := blobstore.OpenReader(ctx, store, "out/results.tsv")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	var want bytes.Buffer
	require.NoError(t, ggca.WriteResults(&want, results))
	assert.Equal(t, want.String(), string(got))
	assert.Equal(t, 2, bytes.Count(got, []byte("\n")))

	err = ggca.PutResults(ctx, failingStore{store}, "out/x.tsv", results)
	assert.ErrorContains(t, err, "read-only")
}
