// Package matrix reads labeled numeric matrices as lazy row streams.
//
// The input format is tab-delimited text without a header row or index column.
// The first field of every record is the row label, the remaining fields are
// float64 samples:
//
//	ENSG00000141510	5.12	4.98	6.01
//	ENSG00000012048	2.33	2.10	1.97
//
// A matrix is never materialized by this package. [Read] and [Load] yield one
// [Row] at a time; [Inspect] re-opens a [Source] to measure its shape without
// parsing samples, because a single pass cannot both measure and stream.
//
// Parsing is fatal on the first invalid sample. The loader does not check that
// rows agree on their sample count; that is the job of the caller.
package matrix
