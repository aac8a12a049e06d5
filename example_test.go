package ggca_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/ggca"
	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/blobstore"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/matrix"
)

func Example() {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	_ = store.Put(ctx, "genes.tsv", []byte("g1\t1\t2\t3\ng2\t2\t4\t6\n"))
	_ = store.Put(ctx, "mirna.tsv", []byte("h1\t1\t2\t3\n"))

	results, err := ggca.Correlate(ctx,
		matrix.BlobSource(store, "genes.tsv"),
		matrix.BlobSource(store, "mirna.tsv"),
		ggca.WithCorrelation(correlation.Pearson),
		ggca.WithThreshold(0),
		ggca.WithAdjustment(adjustment.Bonferroni),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, r := range results {
		fmt.Printf("%s %s r=%.2f adj=%.3g\n", r.First, r.Second, r.Correlation, r.AdjustedPValue)
	}
	// Output:
	// g1 h1 r=1.00 adj=0
	// g2 h1 r=1.00 adj=0
}
