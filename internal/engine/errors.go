package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when a row does not carry the configured
	// number of samples.
	ErrShapeMismatch = errors.New("engine: shape mismatch")

	// ErrRowCountMismatch is returned when a stream yields a different number
	// of rows than announced, which would invalidate the hypothesis count.
	ErrRowCountMismatch = errors.New("engine: row count mismatch")

	// ErrTooManyPairs is returned when rows1*rows2 overflows uint64.
	ErrTooManyPairs = errors.New("engine: pair count overflows")
)

// ShapeError reports a row whose length differs from the column count.
type ShapeError struct {
	Label    string
	Expected int
	Actual   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("engine: row %q has %d samples, expected %d", e.Label, e.Actual, e.Expected)
}

// Is matches ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }
