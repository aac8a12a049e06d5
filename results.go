package ggca

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/ggca/blobstore"
)

// WriteResults writes one tab-separated line per result: first label, second
// label, coefficient, p-value and adjusted p-value. The adjusted field is
// empty for results that were not adjusted.
func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	record := make([]string, 5)
	for _, r := range results {
		record[0] = r.First
		record[1] = r.Second
		record[2] = strconv.FormatFloat(r.Correlation, 'g', -1, 64)
		record[3] = strconv.FormatFloat(r.PValue, 'g', -1, 64)
		record[4] = ""
		if r.Adjusted {
			record[4] = strconv.FormatFloat(r.AdjustedPValue, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PutResults stores results under name in store, in the WriteResults format.
func PutResults(ctx context.Context, store blobstore.BlobStore, name string, results []Result) error {
	var buf bytes.Buffer
	if err := WriteResults(&buf, results); err != nil {
		return err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("ggca: put %s: %w", name, err)
	}
	return nil
}
