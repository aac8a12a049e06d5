// Package ggca computes all-vs-all correlations between two labeled numeric
// matrices with multiple-testing correction.
//
// Every row of the first matrix is paired with every row of the second. Each
// pair is scored with Pearson, Spearman or Kendall correlation, ranked by
// ascending p-value, filtered by coefficient magnitude and corrected with
// Bonferroni, Benjamini-Hochberg or Benjamini-Yekutieli. Rank-dependent
// corrections sort the scored pairs with a bounded-memory external sort, so
// cross products much larger than memory are supported.
//
// # Quick Start
//
//	ctx := context.Background()
//	results, err := ggca.CorrelateFiles(ctx, "genes.tsv", "methylation.tsv",
//	    ggca.WithCorrelation(correlation.Spearman),
//	    ggca.WithAdjustment(adjustment.BenjaminiHochberg),
//	    ggca.WithThreshold(0.5),
//	)
//	for _, r := range results {
//	    fmt.Println(r.First, r.Second, r.Correlation, r.PValue, r.AdjustedPValue)
//	}
//
// # Input Format
//
// Matrices are tab-separated text without header or index column: the first
// field of every line is the row label, the remaining fields are samples.
//
// # Remote Inputs
//
// Any [matrix.Source] works, including objects in a blob store:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("matrices/"))
//	results, err := ggca.Correlate(ctx,
//	    matrix.BlobSource(store, "genes.tsv"),
//	    matrix.BlobSource(store, "methylation.tsv"),
//	)
//
// # Resources
//
// Scoring runs on up to GOMAXPROCS workers ([WithWorkers]). The external
// sort keeps [WithSortBufferSize] results in memory and spills the rest to a
// private directory under [WithTempDir], optionally compressed
// ([WithCompression]) and rate limited ([WithSpillIOLimit]).
// [WithMemoryLimit] bounds the materialized matrix.
package ggca
