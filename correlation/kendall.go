package correlation

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

type kendall struct {
	v0 float64 // n(n-1)(2n+5)
	n1 float64 // n(n-1)
	n2 float64 // n(n-1)(n-2)
}

func newKendall(n int) *kendall {
	fn := float64(n)
	return &kendall{
		v0: fn * (fn - 1) * (2*fn + 5),
		n1: fn * (fn - 1),
		n2: fn * (fn - 1) * (fn - 2),
	}
}

// tieSums accumulates the tie-group statistics of one vector.
type tieSums struct {
	pairs  float64 // sum t(t-1)/2
	v      float64 // sum t(t-1)(2t+5)
	first  float64 // sum t(t-1)
	second float64 // sum t(t-1)(t-2)
}

func ties(xs []float64) tieSums {
	sorted := append([]float64(nil), xs...)
	slices.Sort(sorted)

	var s tieSums
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if t := float64(j - i); t > 1 {
			s.pairs += t * (t - 1) / 2
			s.v += t * (t - 1) * (2*t + 5)
			s.first += t * (t - 1)
			s.second += t * (t - 1) * (t - 2)
		}
		i = j
	}
	return s
}

func (k *kendall) Correlate(xs, ys []float64) (float64, float64) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return Degenerate()
	}

	var concordant, discordant float64
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			dx := xs[i] - xs[j]
			dy := ys[i] - ys[j]
			switch s := dx * dy; {
			case s > 0:
				concordant++
			case s < 0:
				discordant++
			}
		}
	}

	tx, ty := ties(xs), ties(ys)
	n0 := k.n1 / 2
	denom := math.Sqrt((n0 - tx.pairs) * (n0 - ty.pairs))
	if denom == 0 {
		return Degenerate()
	}
	tau := math.Max(-1, math.Min(1, (concordant-discordant)/denom))

	variance := (k.v0-tx.v-ty.v)/18 + tx.first*ty.first/(2*k.n1)
	if n > 2 {
		variance += tx.second * ty.second / (9 * k.n2)
	}
	if variance <= 0 {
		return tau, 1
	}
	z := (concordant - discordant) / math.Sqrt(variance)
	return tau, clampProbability(2 * distuv.UnitNormal.Survival(math.Abs(z)))
}
