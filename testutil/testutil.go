package testutil

import (
	"fmt"
	"iter"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/ggca/matrix"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with values in [0, 1).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// FillGaussian fills dst with standard normal values.
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// UniformMatrix returns rows labeled prefix0..prefixN-1 with uniform samples.
func (r *RNG) UniformMatrix(prefix string, rows, columns int) []matrix.Row {
	out := make([]matrix.Row, rows)
	for i := range out {
		values := make([]float64, columns)
		r.FillUniform(values)
		out[i] = matrix.Row{Label: fmt.Sprintf("%s%d", prefix, i), Values: values}
	}
	return out
}

// CorrelatedMatrix returns one row per base row: the base values plus
// gaussian noise scaled by noise.
func (r *RNG) CorrelatedMatrix(prefix string, base []matrix.Row, noise float64) []matrix.Row {
	out := make([]matrix.Row, len(base))
	for i, b := range base {
		values := make([]float64, len(b.Values))
		r.FillGaussian(values)
		for j := range values {
			values[j] = b.Values[j] + noise*values[j]
		}
		out[i] = matrix.Row{Label: fmt.Sprintf("%s%d", prefix, i), Values: values}
	}
	return out
}

// QuantizedMatrix returns rows with integer samples in [0, levels), which
// produces many ties.
func (r *RNG) QuantizedMatrix(prefix string, rows, columns, levels int) []matrix.Row {
	out := make([]matrix.Row, rows)
	for i := range out {
		values := make([]float64, columns)
		for j := range values {
			values[j] = float64(r.Intn(levels))
		}
		out[i] = matrix.Row{Label: fmt.Sprintf("%s%d", prefix, i), Values: values}
	}
	return out
}

// Rows returns a row stream over rows.
func Rows(rows []matrix.Row) iter.Seq2[matrix.Row, error] {
	return func(yield func(matrix.Row, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// FailingRows yields rows and then err.
func FailingRows(rows []matrix.Row, err error) iter.Seq2[matrix.Row, error] {
	return func(yield func(matrix.Row, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		yield(matrix.Row{}, err)
	}
}

// FormatTSV renders rows in the matrix file format.
func FormatTSV(rows []matrix.Row) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(row.Label)
		for _, v := range row.Values {
			sb.WriteByte('\t')
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTSV writes rows to dir/name and returns the path.
func WriteTSV(t testing.TB, dir, name string, rows []matrix.Row) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(FormatTSV(rows)), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
