package ggca

import (
	"context"
	"time"

	"github.com/hupe1980/ggca/internal/engine"
	"github.com/hupe1980/ggca/internal/resource"
	"github.com/hupe1980/ggca/matrix"
)

// Result is the scored outcome of one pair. First is the label from the first
// matrix and Second the label from the second. AdjustedPValue is valid when
// Adjusted is true, which holds for every returned result.
type Result = engine.Result

// CompareByPValue orders results by ascending raw p-value only.
func CompareByPValue(a, b Result) int {
	return engine.CompareByPValue(a, b)
}

// Correlate scores every pair of rows from first and second.
//
// Both sources are inspected before any pair is scored: an empty matrix
// yields an empty result, and differing sample counts fail with
// *ErrShapeMismatch. Any other failure (parse errors, IO, sort chunk
// corruption, memory limit, cancellation) aborts the whole call; there are no
// partial results.
//
// For Bonferroni the results come in input order (first-matrix row major when
// it is the larger matrix). For Benjamini-Hochberg and Benjamini-Yekutieli
// they come in ascending p-value order.
func Correlate(ctx context.Context, first, second matrix.Source, optFns ...Option) (results []Result, err error) {
	o := applyOptions(optFns)
	log := o.logger.WithSources(first.Name(), second.Name())
	start := time.Now()
	defer func() {
		o.metricsCollector.RecordRun(len(results), time.Since(start), err)
		log.LogRun(ctx, len(results), time.Since(start), err)
	}()

	s1, err := matrix.Inspect(ctx, first)
	log.LogShape(ctx, first.Name(), s1.Rows, s1.Columns, err)
	if err != nil {
		return nil, err
	}
	s2, err := matrix.Inspect(ctx, second)
	log.LogShape(ctx, second.Name(), s2.Rows, s2.Columns, err)
	if err != nil {
		return nil, err
	}

	if s1.Rows == 0 || s2.Rows == 0 {
		return []Result{}, nil
	}
	if s1.Columns != s2.Columns {
		return nil, &ErrShapeMismatch{Expected: s1.Columns, Actual: s2.Columns, Label: second.Name()}
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimit,
		MaxWorkers:         int64(o.workers),
		IOLimitBytesPerSec: o.spillIOLimit,
	})

	results, err = engine.AllVsAll(ctx,
		matrix.Load(ctx, first), s1.Rows,
		matrix.Load(ctx, second), s2.Rows,
		s1.Columns,
		engine.Config{
			Correlation:    o.correlation,
			Threshold:      o.threshold,
			Adjustment:     o.adjustment,
			SortBufferSize: o.sortBufferSize,
			MaxOpenChunks:  o.maxOpenChunks,
			TempDir:        o.tempDir,
			Compression:    o.compression,
			Resource:       rc,
			Logger:         log.Logger,
			Metrics:        engineObserver{mc: o.metricsCollector},
		},
	)
	if err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// CorrelateFiles is Correlate over two local TSV files.
func CorrelateFiles(ctx context.Context, path1, path2 string, optFns ...Option) ([]Result, error) {
	return Correlate(ctx, matrix.FileSource(path1), matrix.FileSource(path2), optFns...)
}
