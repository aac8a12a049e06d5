package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/extsort"
	"github.com/hupe1980/ggca/internal/resource"
	"github.com/hupe1980/ggca/matrix"
	"github.com/hupe1980/ggca/testutil"
)

func run(t *testing.T, m1, m2 []matrix.Row, cfg Config) []Result {
	t.Helper()
	columns := 0
	if len(m1) > 0 {
		columns = len(m1[0].Values)
	}
	if cfg.TempDir == "" {
		cfg.TempDir = t.TempDir()
	}
	results, err := AllVsAll(context.Background(),
		testutil.Rows(m1), uint64(len(m1)),
		testutil.Rows(m2), uint64(len(m2)),
		columns, cfg)
	require.NoError(t, err)
	return results
}

func TestAllVsAll_PerfectCorrelation(t *testing.T) {
	a := []matrix.Row{
		{Label: "g1", Values: []float64{1, 2, 3}},
		{Label: "g2", Values: []float64{2, 4, 6}},
	}
	b := []matrix.Row{{Label: "h1", Values: []float64{1, 2, 3}}}

	results := run(t, a, b, Config{Correlation: correlation.Pearson, Adjustment: adjustment.Bonferroni})

	require.Len(t, results, 2)
	assert.Equal(t, "g1", results[0].First)
	assert.Equal(t, "h1", results[0].Second)
	assert.Equal(t, "g2", results[1].First)
	assert.Equal(t, "h1", results[1].Second)
	for _, r := range results {
		assert.InDelta(t, 1.0, r.Correlation, 1e-12)
		assert.True(t, r.Adjusted)
		assert.Equal(t, math.Min(1, r.PValue*2), r.AdjustedPValue)
	}
}

func TestAllVsAll_LabelOrderWhenFirstIsSmaller(t *testing.T) {
	rng := testutil.NewRNG(1)
	a := rng.UniformMatrix("a", 2, 6)
	b := rng.UniformMatrix("b", 5, 6)

	for _, method := range []adjustment.Method{adjustment.Bonferroni, adjustment.BenjaminiHochberg} {
		results := run(t, a, b, Config{Adjustment: method})
		require.Len(t, results, 10)
		for _, r := range results {
			assert.Equal(t, byte('a'), r.First[0])
			assert.Equal(t, byte('b'), r.Second[0])
		}
	}

	// Bonferroni keeps stream order: outer rows (b) major, inner rows (a) minor.
	results := run(t, a, b, Config{})
	assert.Equal(t, "a0", results[0].First)
	assert.Equal(t, "b0", results[0].Second)
	assert.Equal(t, "a1", results[1].First)
	assert.Equal(t, "b0", results[1].Second)
}

func TestAllVsAll_SortedByPValue(t *testing.T) {
	rng := testutil.NewRNG(2)
	a := rng.UniformMatrix("g", 12, 8)
	b := rng.CorrelatedMatrix("c", a, 0.3)

	for _, method := range []adjustment.Method{adjustment.BenjaminiHochberg, adjustment.BenjaminiYekutieli} {
		t.Run(method.String(), func(t *testing.T) {
			results := run(t, a, b, Config{Adjustment: method, SortBufferSize: 10})
			require.Len(t, results, 144)
			for i := 1; i < len(results); i++ {
				assert.LessOrEqual(t, results[i-1].PValue, results[i].PValue)
				assert.LessOrEqual(t, results[i-1].AdjustedPValue, results[i].AdjustedPValue, "step-up monotonicity")
			}
			for _, r := range results {
				assert.True(t, r.Adjusted)
				assert.GreaterOrEqual(t, r.AdjustedPValue, r.PValue)
				assert.LessOrEqual(t, r.AdjustedPValue, 1.0)
			}
		})
	}
}

func TestAllVsAll_SpillMatchesInMemory(t *testing.T) {
	rng := testutil.NewRNG(3)
	a := rng.UniformMatrix("g", 9, 10)
	b := rng.UniformMatrix("c", 11, 10)

	want := run(t, a, b, Config{Adjustment: adjustment.BenjaminiHochberg})
	for _, c := range []extsort.Compression{extsort.CompressionNone, extsort.CompressionLZ4, extsort.CompressionZSTD} {
		got := run(t, a, b, Config{
			Adjustment:     adjustment.BenjaminiHochberg,
			SortBufferSize: 1 + rng.Intn(20),
			Compression:    c,
		})
		assert.Equal(t, want, got, c.String())
	}
	got := run(t, a, b, Config{Adjustment: adjustment.BenjaminiHochberg, SortBufferSize: 1})
	assert.Equal(t, want, got)

	// 99 single-result chunks merged two at a time
	got = run(t, a, b, Config{Adjustment: adjustment.BenjaminiHochberg, SortBufferSize: 1, MaxOpenChunks: 2})
	assert.Equal(t, want, got)
}

func TestAllVsAll_ParallelMatchesSequential(t *testing.T) {
	rng := testutil.NewRNG(4)
	a := rng.UniformMatrix("g", 23, 7)
	b := rng.UniformMatrix("c", 17, 7)

	for _, method := range []correlation.Method{correlation.Pearson, correlation.Spearman, correlation.Kendall} {
		seq := run(t, a, b, Config{
			Correlation: method,
			Resource:    resource.NewController(resource.Config{MaxWorkers: 1}),
		})
		par := run(t, a, b, Config{
			Correlation: method,
			Resource:    resource.NewController(resource.Config{MaxWorkers: 8}),
			BatchRows:   5,
		})
		assert.Equal(t, seq, par, method.String())
	}
}

func TestAllVsAll_ThresholdKeepsRanks(t *testing.T) {
	rng := testutil.NewRNG(5)
	a := rng.UniformMatrix("g", 10, 9)
	b := rng.CorrelatedMatrix("c", a, 0.2)

	key := func(r Result) string { return r.First + "/" + r.Second }

	for _, method := range []adjustment.Method{adjustment.Bonferroni, adjustment.BenjaminiHochberg, adjustment.BenjaminiYekutieli} {
		t.Run(method.String(), func(t *testing.T) {
			all := run(t, a, b, Config{Adjustment: method})
			byPair := make(map[string]Result, len(all))
			for _, r := range all {
				byPair[key(r)] = r
			}

			filtered := run(t, a, b, Config{Adjustment: method, Threshold: 0.5})
			require.NotEmpty(t, filtered)
			assert.Less(t, len(filtered), len(all))
			for _, r := range filtered {
				assert.GreaterOrEqual(t, math.Abs(r.Correlation), 0.5)
				// filtering never changes the rank a pair is adjusted with
				assert.Equal(t, byPair[key(r)].AdjustedPValue, r.AdjustedPValue, key(r))
			}
		})
	}
}

func TestAllVsAll_ThresholdAboveOne(t *testing.T) {
	rng := testutil.NewRNG(6)
	a := rng.UniformMatrix("g", 3, 5)
	results := run(t, a, a, Config{Threshold: 1.5, Adjustment: adjustment.BenjaminiHochberg})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestAllVsAll_ConstantRows(t *testing.T) {
	a := []matrix.Row{
		{Label: "flat", Values: []float64{2, 2, 2, 2}},
		{Label: "up", Values: []float64{1, 2, 3, 4}},
	}
	b := []matrix.Row{
		{Label: "h1", Values: []float64{4, 3, 2, 1}},
		{Label: "h2", Values: []float64{7, 7, 7, 7}},
		{Label: "h3", Values: []float64{1, 3, 2, 4}},
	}

	values := map[string][]float64{}
	for _, row := range append(append([]matrix.Row{}, a...), b...) {
		values[row.Label] = row.Values
	}

	for _, method := range []correlation.Method{correlation.Pearson, correlation.Spearman, correlation.Kendall} {
		corr, err := correlation.New(method, 4)
		require.NoError(t, err)

		results := run(t, a, b, Config{Correlation: method})
		require.Len(t, results, 6)
		for _, r := range results {
			// the constant-row shortcut agrees with the correlator
			wantR, wantP := corr.Correlate(values[r.First], values[r.Second])
			assert.Equal(t, wantR, r.Correlation, "%s/%s", r.First, r.Second)
			assert.Equal(t, wantP, r.PValue, "%s/%s", r.First, r.Second)

			if r.First == "flat" || r.Second == "h2" {
				assert.Equal(t, 0.0, r.Correlation)
				assert.Equal(t, 1.0, r.PValue)
			}
			assert.False(t, math.IsNaN(r.Correlation))
			assert.False(t, math.IsNaN(r.AdjustedPValue))
		}
	}
}

func TestAllVsAll_EmptyMatrix(t *testing.T) {
	rng := testutil.NewRNG(7)
	a := rng.UniformMatrix("g", 3, 5)

	results, err := AllVsAll(context.Background(), testutil.Rows(a), 3, testutil.Rows(nil), 0, 5, Config{})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestAllVsAll_ShapeMismatch(t *testing.T) {
	a := []matrix.Row{
		{Label: "g1", Values: []float64{1, 2, 3}},
		{Label: "g2", Values: []float64{1, 2}},
	}
	b := []matrix.Row{{Label: "h1", Values: []float64{1, 2, 3}}}
	c := testutil.NewRNG(13).UniformMatrix("c", 3, 3)

	for _, tc := range []struct {
		name   string
		m1, m2 []matrix.Row
	}{
		{"streamed side", a, b},
		{"materialized side", c, a},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AllVsAll(context.Background(),
				testutil.Rows(tc.m1), uint64(len(tc.m1)),
				testutil.Rows(tc.m2), uint64(len(tc.m2)),
				3, Config{})
			require.ErrorIs(t, err, ErrShapeMismatch)

			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "g2", se.Label)
			assert.Equal(t, 3, se.Expected)
			assert.Equal(t, 2, se.Actual)
		})
	}
}

func TestAllVsAll_RowCountMismatch(t *testing.T) {
	rng := testutil.NewRNG(8)
	a := rng.UniformMatrix("g", 4, 5)
	b := rng.UniformMatrix("c", 2, 5)

	_, err := AllVsAll(context.Background(), testutil.Rows(a), 5, testutil.Rows(b), 2, 5, Config{})
	assert.ErrorIs(t, err, ErrRowCountMismatch)

	_, err = AllVsAll(context.Background(), testutil.Rows(a), 4, testutil.Rows(b), 3, 5, Config{})
	assert.ErrorIs(t, err, ErrRowCountMismatch)
}

func TestAllVsAll_TooManyPairs(t *testing.T) {
	_, err := AllVsAll(context.Background(), testutil.Rows(nil), math.MaxUint64, testutil.Rows(nil), 2, 1, Config{})
	assert.ErrorIs(t, err, ErrTooManyPairs)
}

func TestAllVsAll_SourceError(t *testing.T) {
	boom := errors.New("boom")
	rng := testutil.NewRNG(9)
	a := rng.UniformMatrix("g", 4, 5)
	b := rng.UniformMatrix("c", 2, 5)

	for _, method := range []adjustment.Method{adjustment.Bonferroni, adjustment.BenjaminiHochberg} {
		_, err := AllVsAll(context.Background(),
			testutil.FailingRows(a, boom), 5,
			testutil.Rows(b), 2,
			5, Config{Adjustment: method, TempDir: t.TempDir()})
		assert.ErrorIs(t, err, boom)
	}
}

func TestAllVsAll_MemoryLimit(t *testing.T) {
	rng := testutil.NewRNG(10)
	a := rng.UniformMatrix("g", 4, 50)
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 500})

	_, err := AllVsAll(context.Background(), testutil.Rows(a), 4, testutil.Rows(a), 4, 50, Config{Resource: rc})
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Zero(t, rc.MemoryUsage(), "charged memory is released on failure")

	rc = resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	_, err = AllVsAll(context.Background(), testutil.Rows(a), 4, testutil.Rows(a), 4, 50, Config{Resource: rc})
	require.NoError(t, err)
	assert.Zero(t, rc.MemoryUsage())
}

func TestAllVsAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rng := testutil.NewRNG(11)
	a := rng.UniformMatrix("g", 4, 5)
	_, err := AllVsAll(ctx, testutil.Rows(a), 4, testutil.Rows(a), 4, 5, Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

type countingObserver struct {
	loads, scores, spills, runs atomic.Int64
	pairs                       atomic.Uint64
}

func (o *countingObserver) OnLoad(int, int64, time.Duration) { o.loads.Add(1) }
func (o *countingObserver) OnScore(pairs uint64, _ time.Duration) {
	o.scores.Add(1)
	o.pairs.Add(pairs)
}
func (o *countingObserver) OnSpill(int, int64)              { o.spills.Add(1) }
func (o *countingObserver) OnRun(int, time.Duration, error) { o.runs.Add(1) }

func TestAllVsAll_Metrics(t *testing.T) {
	rng := testutil.NewRNG(12)
	a := rng.UniformMatrix("g", 6, 5)
	b := rng.UniformMatrix("c", 4, 5)

	obs := &countingObserver{}
	run(t, a, b, Config{Adjustment: adjustment.BenjaminiHochberg, SortBufferSize: 5, Metrics: obs})

	assert.Equal(t, int64(1), obs.loads.Load())
	assert.Equal(t, int64(1), obs.scores.Load())
	assert.Equal(t, uint64(24), obs.pairs.Load())
	assert.Equal(t, int64(1), obs.spills.Load())
	assert.Equal(t, int64(1), obs.runs.Load())
}

type runKey struct{}

// ctxHandler records the runKey value of the context each message was logged with.
type ctxHandler struct {
	mu   sync.Mutex
	seen map[string]any
}

func (h *ctxHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[r.Message] = ctx.Value(runKey{})
	return nil
}

func (h *ctxHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *ctxHandler) WithGroup(string) slog.Handler      { return h }

func TestAllVsAll_LogsCarryContext(t *testing.T) {
	rng := testutil.NewRNG(9)
	a := rng.UniformMatrix("g", 4, 5)
	b := rng.UniformMatrix("c", 3, 5)

	h := &ctxHandler{seen: map[string]any{}}
	ctx := context.WithValue(context.Background(), runKey{}, "run-7")
	_, err := AllVsAll(ctx,
		testutil.Rows(a), uint64(len(a)),
		testutil.Rows(b), uint64(len(b)),
		5, Config{
			Adjustment:     adjustment.BenjaminiHochberg,
			SortBufferSize: 2,
			TempDir:        t.TempDir(),
			Logger:         slog.New(h),
		})
	require.NoError(t, err)

	require.Contains(t, h.seen, "matrix materialized")
	require.Contains(t, h.seen, "spilled sort chunk")
	for msg, v := range h.seen {
		assert.Equal(t, "run-7", v, msg)
	}
}

func TestResultCodec(t *testing.T) {
	c := ResultCodec{}
	in := Result{First: "g1", Second: "h1", Correlation: -0.5, PValue: 1e-300}

	buf, err := c.Append(nil, in)
	require.NoError(t, err)
	out, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = c.Decode(buf[:len(buf)-1])
	assert.Error(t, err)
	_, err = c.Decode(append(buf, 0))
	assert.Error(t, err)
}

func TestCompareByPValue(t *testing.T) {
	a := Result{First: "a", Correlation: 0.9, PValue: 0.01}
	b := Result{First: "b", Correlation: 0.1, PValue: 0.01}
	c := Result{PValue: 0.5}

	assert.Zero(t, CompareByPValue(a, b))
	assert.Negative(t, CompareByPValue(a, c))
	assert.Positive(t, CompareByPValue(c, b))
}
