package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"math/bits"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/extsort"
	"github.com/hupe1980/ggca/matrix"
)

// rowOverhead approximates the fixed cost of one materialized row.
const rowOverhead = 64

// AllVsAll scores every (matrix-1 row, matrix-2 row) pair, ranks the pairs by
// ascending p-value, keeps those with |coefficient| >= cfg.Threshold and
// attaches the adjusted p-value computed over all rows1*rows2 hypotheses.
//
// The matrix with fewer rows is materialized (the second one on ties) and the
// other is streamed once. Results come back in stream order, which is
// ascending p-value for rank-dependent corrections.
func AllVsAll(
	ctx context.Context,
	m1 iter.Seq2[matrix.Row, error], rows1 uint64,
	m2 iter.Seq2[matrix.Row, error], rows2 uint64,
	columns int,
	cfg Config,
) (results []Result, err error) {
	cfg = cfg.withDefaults()
	start := time.Now()
	defer func() {
		cfg.Metrics.OnRun(len(results), time.Since(start), err)
	}()

	hi, total := bits.Mul64(rows1, rows2)
	if hi != 0 {
		return nil, fmt.Errorf("%w: %d x %d", ErrTooManyPairs, rows1, rows2)
	}
	if total == 0 {
		return []Result{}, nil
	}

	corr, err := correlation.New(cfg.Correlation, columns)
	if err != nil {
		return nil, err
	}
	adj, err := adjustment.New(cfg.Adjustment, total)
	if err != nil {
		return nil, err
	}

	cfg.Logger.InfoContext(ctx, "all-vs-all started",
		slog.Uint64("rows1", rows1),
		slog.Uint64("rows2", rows2),
		slog.Int("columns", columns),
		slog.String("correlation", cfg.Correlation.String()),
		slog.String("adjustment", cfg.Adjustment.String()),
		slog.Float64("threshold", cfg.Threshold),
	)

	p := &pairing{
		cfg:     cfg,
		corr:    corr,
		columns: columns,
	}
	outer, inner := m1, m2
	innerRows, outerRows := rows2, rows1
	if rows1 < rows2 {
		outer, inner = m2, m1
		innerRows, outerRows = rows1, rows2
		p.innerIsFirst = true
	}

	defer p.release()
	if err := p.materialize(ctx, inner, innerRows); err != nil {
		return nil, err
	}

	scored := p.score(ctx, outer, outerRows)
	if cfg.Adjustment.RequiresSort() {
		sorted, err := extsort.New(CompareByPValue, ResultCodec{}, cfg.sortOptions()...).Sort(ctx, scored)
		if err != nil {
			return nil, fmt.Errorf("engine: sort: %w", err)
		}
		defer sorted.Close()
		if n := sorted.Spilled(); n > 0 {
			cfg.Metrics.OnSpill(n, sorted.SpilledBytes())
			cfg.Logger.DebugContext(ctx, "sort spilled",
				slog.Int("chunks", n),
				slog.Int64("bytes", sorted.SpilledBytes()),
				slog.Int("merge_passes", sorted.MergePasses()),
			)
		}
		scored = sorted.All()
	}

	results, err = rankAndAdjust(scored, total, cfg.Threshold, cfg.Adjustment, adj)
	if err != nil {
		return nil, err
	}

	cfg.Logger.InfoContext(ctx, "all-vs-all completed",
		slog.Uint64("pairs", total),
		slog.Int("results", len(results)),
		slog.Duration("duration", time.Since(start)),
	)
	return results, nil
}

// pairing holds the materialized side of the cross product.
type pairing struct {
	cfg          Config
	corr         correlation.Correlator
	columns      int
	innerIsFirst bool

	inner    []matrix.Row
	// constant marks inner rows with zero variance. Correlators already return
	// Degenerate for them; the bitmap only skips the per-pair ranking work.
	constant *roaring.Bitmap
	charged  int64
}

func (p *pairing) materialize(ctx context.Context, seq iter.Seq2[matrix.Row, error], want uint64) error {
	start := time.Now()
	p.inner = make([]matrix.Row, 0, min(want, 1<<16))
	p.constant = roaring.New()

	for row, err := range seq {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.check(row); err != nil {
			return err
		}
		size := rowOverhead + int64(len(row.Label)) + 8*int64(len(row.Values))
		if err := p.cfg.Resource.AcquireMemory(size); err != nil {
			return fmt.Errorf("engine: materialize row %d: %w", len(p.inner), err)
		}
		p.charged += size
		if correlation.IsConstant(row.Values) {
			p.constant.Add(uint32(len(p.inner)))
		}
		p.inner = append(p.inner, row)
	}
	if uint64(len(p.inner)) != want {
		return fmt.Errorf("%w: materialized %d rows, expected %d", ErrRowCountMismatch, len(p.inner), want)
	}

	p.cfg.Metrics.OnLoad(len(p.inner), p.charged, time.Since(start))
	p.cfg.Logger.DebugContext(ctx, "matrix materialized",
		slog.Int("rows", len(p.inner)),
		slog.Uint64("constant_rows", p.constant.GetCardinality()),
		slog.Int64("bytes", p.charged),
	)
	return nil
}

func (p *pairing) release() {
	p.cfg.Resource.ReleaseMemory(p.charged)
	p.charged = 0
	p.inner = nil
}

func (p *pairing) check(row matrix.Row) error {
	if len(row.Values) != p.columns {
		return &ShapeError{Label: row.Label, Expected: p.columns, Actual: len(row.Values)}
	}
	return nil
}

// score streams the scored pairs of every outer row in input order. Outer
// rows are scored in batches, one worker per row.
func (p *pairing) score(ctx context.Context, outer iter.Seq2[matrix.Row, error], want uint64) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		start := time.Now()
		batch := make([]matrix.Row, 0, p.cfg.BatchRows)
		scored := make([][]Result, p.cfg.BatchRows)
		var seen uint64

		flush := func() bool {
			if err := p.scoreBatch(ctx, batch, scored); err != nil {
				yield(Result{}, err)
				return false
			}
			for i := range batch {
				for _, r := range scored[i] {
					if !yield(r, nil) {
						return false
					}
				}
				scored[i] = scored[i][:0]
			}
			clear(batch)
			batch = batch[:0]
			return true
		}

		for row, err := range outer {
			if err != nil {
				yield(Result{}, err)
				return
			}
			if err := p.check(row); err != nil {
				yield(Result{}, err)
				return
			}
			seen++
			batch = append(batch, row)
			if len(batch) == cap(batch) && !flush() {
				return
			}
		}
		if len(batch) > 0 && !flush() {
			return
		}
		if seen != want {
			yield(Result{}, fmt.Errorf("%w: streamed %d rows, expected %d", ErrRowCountMismatch, seen, want))
			return
		}
		p.cfg.Metrics.OnScore(seen*uint64(len(p.inner)), time.Since(start))
	}
}

func (p *pairing) scoreBatch(ctx context.Context, batch []matrix.Row, out [][]Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	workers := p.cfg.Resource.Workers()
	if workers <= 1 || len(batch) == 1 {
		for i, row := range batch {
			out[i] = p.scoreRow(row, out[i])
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, row := range batch {
		g.Go(func() error {
			if err := p.cfg.Resource.AcquireWorker(gctx); err != nil {
				return err
			}
			defer p.cfg.Resource.ReleaseWorker()
			out[i] = p.scoreRow(row, out[i])
			return nil
		})
	}
	return g.Wait()
}

// scoreRow pairs one outer row with every materialized row.
func (p *pairing) scoreRow(row matrix.Row, dst []Result) []Result {
	outerConstant := correlation.IsConstant(row.Values)
	for j, in := range p.inner {
		first, second := row, in
		if p.innerIsFirst {
			first, second = in, row
		}

		var r, pv float64
		// same result as Correlate, without ranking or pair counting
		if outerConstant || p.constant.Contains(uint32(j)) {
			r, pv = correlation.Degenerate()
		} else {
			r, pv = p.corr.Correlate(first.Values, second.Values)
		}
		dst = append(dst, Result{
			First:       first.Label,
			Second:      second.Label,
			Correlation: r,
			PValue:      pv,
		})
	}
	return dst
}

// rankAndAdjust enumerates the stream from zero, filters by magnitude and adjusts the
// survivors with their true rank.
func rankAndAdjust(seq iter.Seq2[Result, error], total uint64, threshold float64, method adjustment.Method, adj adjustment.Adjuster) ([]Result, error) {
	results := []Result{}
	var step *adjustment.StepUp
	if method.RequiresSort() {
		step = adjustment.NewStepUp(adj)
	}

	var rank uint64
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		keep := math.Abs(r.Correlation) >= threshold
		switch {
		case step == nil:
			if keep {
				r.AdjustedPValue = adj.Adjust(r.PValue, rank)
				r.Adjusted = true
				results = append(results, r)
			}
		case keep:
			if _, err := step.Keep(r.PValue, rank); err != nil {
				return nil, err
			}
			results = append(results, r)
		default:
			if err := step.Skip(r.PValue, rank); err != nil {
				return nil, err
			}
		}
		rank++
	}
	if rank != total {
		return nil, fmt.Errorf("%w: ranked %d pairs, expected %d", ErrRowCountMismatch, rank, total)
	}

	if step != nil {
		for i, q := range step.Finish() {
			results[i].AdjustedPValue = q
			results[i].Adjusted = true
		}
	}
	return results, nil
}
