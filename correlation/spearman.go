package correlation

import (
	"slices"
)

type spearman struct {
	pearson *pearson
}

func (s *spearman) Correlate(xs, ys []float64) (float64, float64) {
	r, ok := productMoment(Ranks(xs), Ranks(ys))
	if !ok {
		return Degenerate()
	}
	return r, s.pearson.pValue(r)
}

// Ranks returns the 1-based average ranks of xs. Tied values share the mean
// of the ranks they span.
func Ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case xs[a] < xs[b]:
			return -1
		case xs[a] > xs[b]:
			return 1
		default:
			return 0
		}
	})

	ranks := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// positions i..j-1 hold ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}
