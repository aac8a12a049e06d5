package engine

import (
	"cmp"
	"fmt"

	"github.com/hupe1980/ggca/codec"
)

// Result is the scored outcome of one pair.
// First is always the matrix-1 label and Second the matrix-2 label.
type Result struct {
	First       string
	Second      string
	Correlation float64
	PValue      float64

	// AdjustedPValue is valid only when Adjusted is true.
	AdjustedPValue float64
	Adjusted       bool
}

// CompareByPValue orders results by ascending raw p-value only. Results with
// equal p-values compare equal.
func CompareByPValue(a, b Result) int {
	return cmp.Compare(a.PValue, b.PValue)
}

// ResultCodec is the compact binary codec used for spilled results. The
// adjustment fields are not encoded: spilling happens before adjustment.
type ResultCodec struct{}

var _ codec.Codec[Result] = ResultCodec{}

func (ResultCodec) Append(dst []byte, r Result) ([]byte, error) {
	dst = codec.AppendString(dst, r.First)
	dst = codec.AppendString(dst, r.Second)
	dst = codec.AppendFloat64(dst, r.Correlation)
	dst = codec.AppendFloat64(dst, r.PValue)
	return dst, nil
}

func (ResultCodec) Decode(data []byte) (Result, error) {
	rd := codec.NewReader(data)
	r := Result{
		First:       rd.String(),
		Second:      rd.String(),
		Correlation: rd.Float64(),
		PValue:      rd.Float64(),
	}
	if err := rd.Err(); err != nil {
		return Result{}, err
	}
	if n := rd.Len(); n != 0 {
		return Result{}, fmt.Errorf("engine: %d trailing bytes in result", n)
	}
	return r, nil
}

func (ResultCodec) Name() string { return "result-v1" }
