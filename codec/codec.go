// Package codec centralizes record encoding for spilled sort runs.
//
// A codec turns one value into one self-contained payload. Framing, checksums
// and compression are the caller's concern. Changing a codec changes the bytes
// written to chunk files; chunk files never outlive a single run, so codecs are
// free to evolve.
package codec

import "fmt"

// Codec encodes/decodes values of type T.
// Implementations must be safe for concurrent use.
type Codec[T any] interface {
	// Append encodes v and appends it to dst.
	Append(dst []byte, v T) ([]byte, error)
	// Decode decodes one payload produced by Append.
	Decode(data []byte) (T, error)
	Name() string
}

// MustAppend is a helper for internal tests/benchmarks.
func MustAppend[T any](c Codec[T], dst []byte, v T) []byte {
	b, err := c.Append(dst, v)
	if err != nil {
		panic(fmt.Errorf("codec %s append failed: %w", c.Name(), err))
	}
	return b
}
