package matrix

import (
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
)

// header row + 1-based numbering
const positionOffset = 2

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true
	return cr
}

// Read parses tab-delimited rows from r lazily.
//
// The sequence yields a non-nil error at most once and stops afterwards. A
// sample that does not parse as float64 yields a *ParseError.
func Read(r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		cr := newReader(r)
		for idx := 0; ; idx++ {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, err)
				return
			}
			row, err := parseRecord(idx, record)
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

func parseRecord(idx int, record []string) (Row, error) {
	if len(record) == 0 {
		return Row{}, ErrEmptyRecord
	}
	values := make([]float64, len(record)-1)
	for col, cell := range record[1:] {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Row{}, &ParseError{
				Row:    idx + positionOffset,
				Column: col + positionOffset,
				Value:  cell,
				Err:    err,
			}
		}
		values[col] = v
	}
	// csv fields share one backing string per line
	return Row{Label: strings.Clone(record[0]), Values: values}, nil
}

// Measure counts the records in r and reports the sample count of the first.
// Samples are not parsed.
func Measure(r io.Reader) (Shape, error) {
	cr := newReader(r)
	var shape Shape
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return shape, nil
		}
		if err != nil {
			return Shape{}, err
		}
		if shape.Rows == 0 && len(record) > 0 {
			shape.Columns = len(record) - 1
		}
		shape.Rows++
	}
}
