// Package engine implements the all-vs-all correlation pipeline.
//
// The engine orchestrates:
//   - the cross product of two row streams (smaller side materialized)
//   - parallel pair scoring with a bounded worker group and ordered output
//   - an external sort by p-value for rank-dependent corrections
//   - ranking, magnitude filtering and multiple-testing adjustment
//
// A run holds the materialized matrix, one batch of scored pairs and the
// sort buffer in memory. Everything else streams.
package engine
