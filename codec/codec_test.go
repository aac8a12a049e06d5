package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A string  `json:"a"`
	R float64 `json:"r"`
}

func TestJSON(t *testing.T) {
	var c Codec[pair] = JSON[pair]{}
	assert.Equal(t, "go-json", c.Name())

	buf := MustAppend(c, []byte("x"), pair{A: "g1", R: 0.5})
	assert.Equal(t, byte('x'), buf[0])

	got, err := c.Decode(buf[1:])
	require.NoError(t, err)
	assert.Equal(t, pair{A: "g1", R: 0.5}, got)

	_, err = c.Decode([]byte("{"))
	assert.Error(t, err)

	_, err = c.Append(nil, pair{R: math.NaN()})
	assert.Error(t, err)
}

func TestBinaryFields(t *testing.T) {
	var buf []byte
	buf = AppendString(buf, "gene-α")
	buf = AppendFloat64(buf, -0.25)
	buf = AppendUvarint(buf, 1<<40)
	buf = AppendFloat64(buf, math.Inf(1))

	r := NewReader(buf)
	assert.Equal(t, "gene-α", r.String())
	assert.Equal(t, -0.25, r.Float64())
	assert.Equal(t, uint64(1<<40), r.Uvarint())
	assert.True(t, math.IsInf(r.Float64(), 1))
	require.NoError(t, r.Err())
	assert.Zero(t, r.Len())
}

func TestReader_ShortBuffer(t *testing.T) {
	buf := AppendString(nil, "abcdef")

	r := NewReader(buf[:3])
	assert.Empty(t, r.String())
	assert.ErrorIs(t, r.Err(), ErrShortBuffer)

	// errors stick
	assert.Zero(t, r.Float64())
	assert.Zero(t, r.Uvarint())
	assert.ErrorIs(t, r.Err(), ErrShortBuffer)

	r = NewReader([]byte{1, 2, 3})
	assert.Zero(t, r.Float64())
	assert.ErrorIs(t, r.Err(), ErrShortBuffer)

	r = NewReader(nil)
	assert.Zero(t, r.Uvarint())
	assert.ErrorIs(t, r.Err(), ErrShortBuffer)
}
