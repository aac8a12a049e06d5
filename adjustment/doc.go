// Package adjustment implements multiple-testing corrections for p-values.
//
// An [Adjuster] is built once per run from the total number of hypotheses m,
// which is the size of the full cross product regardless of how many pairs
// survive filtering. It maps a raw p-value and its zero-based rank in the
// ascending p-value order to a corrected value:
//
//	Bonferroni          min(1, p*m)
//	Benjamini-Hochberg  min(1, p*m/(rank+1))
//	Benjamini-Yekutieli min(1, p*m*c(m)/(rank+1)),  c(m) = 1 + 1/2 + ... + 1/m
//
// Bonferroni ignores the rank, so its input need not be sorted. The two false
// discovery rate methods require the stream in ascending p-value order and are
// finished by a [StepUp] pass, which makes every adjusted value the minimum of
// itself and the values of all higher ranks.
package adjustment
