package adjustment

import (
	"fmt"
	"math"
)

// Adjuster corrects one p-value given its zero-based rank.
// Implementations are immutable and safe for concurrent use.
type Adjuster interface {
	Adjust(pValue float64, rank uint64) float64
}

// New builds the adjuster for method over m hypotheses.
func New(method Method, m uint64) (Adjuster, error) {
	switch method {
	case Bonferroni:
		return bonferroni{m: float64(m)}, nil
	case BenjaminiHochberg:
		return fdr{scale: float64(m)}, nil
	case BenjaminiYekutieli:
		return fdr{scale: float64(m) * HarmonicNumber(m)}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
	}
}

type bonferroni struct {
	m float64
}

func (b bonferroni) Adjust(p float64, _ uint64) float64 {
	return math.Min(1, p*b.m)
}

// fdr is the per-rank Benjamini-Hochberg value with an optional
// Benjamini-Yekutieli factor folded into scale.
type fdr struct {
	scale float64
}

func (f fdr) Adjust(p float64, rank uint64) float64 {
	return math.Min(1, p*f.scale/float64(rank+1))
}

// exactHarmonicLimit bounds the direct summation in HarmonicNumber.
const exactHarmonicLimit = 1 << 20

// eulerGamma is the Euler-Mascheroni constant.
const eulerGamma = 0.57721566490153286060651209008240243

// HarmonicNumber returns c(m) = sum_{i=1..m} 1/i. Large m use the asymptotic
// expansion, which is accurate to float64 precision there.
func HarmonicNumber(m uint64) float64 {
	if m <= exactHarmonicLimit {
		var sum float64
		// smallest terms first
		for i := m; i >= 1; i-- {
			sum += 1 / float64(i)
		}
		return sum
	}
	n := float64(m)
	n2 := n * n
	return math.Log(n) + eulerGamma + 1/(2*n) - 1/(12*n2) + 1/(120*n2*n2)
}
