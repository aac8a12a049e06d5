// Package testutil provides testing utilities for ggca.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random matrices, writing
// them as TSV fixtures and turning them into row streams.
//
// # Random Matrices
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.UniformMatrix("gene", 100, 12)       // uniform [0, 1)
//	rows = rng.CorrelatedMatrix("cpg", base, 0.1)    // base + gaussian noise
//
// # Fixtures
//
//	path := testutil.WriteTSV(t, t.TempDir(), "genes.tsv", rows)
//	seq := testutil.Rows(rows)
package testutil
