package correlation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Correlator computes a coefficient and a two-sided p-value for a pair of
// equal-length vectors.
type Correlator interface {
	Correlate(xs, ys []float64) (coefficient, pValue float64)
}

// New builds the correlator for method over vectors of columns samples.
func New(method Method, columns int) (Correlator, error) {
	if columns < 0 {
		return nil, fmt.Errorf("correlation: negative column count %d", columns)
	}
	switch method {
	case Pearson:
		return newPearson(columns), nil
	case Spearman:
		return &spearman{pearson: newPearson(columns)}, nil
	case Kendall:
		return newKendall(columns), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
	}
}

// IsConstant reports whether every value of xs is equal. Constant vectors
// have zero variance and are degenerate for every method.
func IsConstant(xs []float64) bool {
	for _, x := range xs[min(1, len(xs)):] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Degenerate is the result reported for undefined correlations.
func Degenerate() (coefficient, pValue float64) {
	return 0, 1
}

type pearson struct {
	df   float64
	dist distuv.StudentsT
}

func newPearson(n int) *pearson {
	df := float64(n - 2)
	return &pearson{
		df:   df,
		dist: distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df},
	}
}

func (p *pearson) Correlate(xs, ys []float64) (float64, float64) {
	r, ok := productMoment(xs, ys)
	if !ok {
		return Degenerate()
	}
	return r, p.pValue(r)
}

func (p *pearson) pValue(r float64) float64 {
	if p.df <= 0 {
		return 1
	}
	if math.Abs(r) == 1 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(p.df/(1-r*r))
	return clampProbability(2 * p.dist.Survival(t))
}

// productMoment returns Pearson's r clamped to [-1, 1]. ok is false when
// either vector has zero variance.
func productMoment(xs, ys []float64) (r float64, ok bool) {
	n := len(xs)
	if n == 0 || len(ys) != n {
		return 0, false
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r = sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) {
		return 0, false
	}
	return math.Max(-1, math.Min(1, r)), true
}

func clampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
