package matrix

import (
	"errors"
	"fmt"
	"iter"
)

// Row is one labeled vector of samples.
type Row struct {
	Label  string
	Values []float64
}

// Shape describes a matrix without holding its data.
type Shape struct {
	Rows    uint64
	Columns int
}

// ErrEmptyRecord is returned for a record that does not even carry a label.
var ErrEmptyRecord = errors.New("matrix: empty record")

// ParseError reports a sample that is not a valid float64.
//
// Row and Column use spreadsheet numbering: the zero-based record index and
// the zero-based sample index are both offset by 2 (one for 1-based counting,
// one for the header row / index column the format omits).
type ParseError struct {
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("matrix: row %d column %d has an invalid value %q", e.Row, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Collect materializes a row stream, stopping at the first error.
func Collect(seq iter.Seq2[Row, error]) ([]Row, error) {
	var rows []Row
	for row, err := range seq {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
