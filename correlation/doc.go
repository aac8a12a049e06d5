// Package correlation implements the pairwise correlation strategies.
//
// Three methods are available, selected by the closed [Method] enum:
//
//   - Pearson: product-moment correlation, two-sided p-value from Student's t
//     with n-2 degrees of freedom
//   - Spearman: Pearson on average ranks (ties share the mean rank)
//   - Kendall: tau-b with the tie-corrected asymptotic normal p-value
//
// A [Correlator] is built once per run for a fixed number of samples and may
// precompute everything that depends only on that number. Correlators hold no
// per-call state and are safe for concurrent use.
//
// Degenerate input (a constant vector, or too few samples to estimate a
// p-value) is not an error. It yields the fixed result (0, 1) so that NaN
// never reaches ordering or adjustment.
package correlation
