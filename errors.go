package ggca

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ggca/internal/engine"
)

// ErrShapeMismatch indicates matrices (or rows) with different sample counts.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
	// Label names the offending row or source.
	Label string
	cause error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %s has %d samples, expected %d", e.Label, e.Actual, e.Expected)
}

func (e *ErrShapeMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var se *engine.ShapeError
	if errors.As(err, &se) {
		return &ErrShapeMismatch{Expected: se.Expected, Actual: se.Actual, Label: se.Label, cause: err}
	}

	return err
}
