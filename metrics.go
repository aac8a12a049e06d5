package ggca

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    pairCounter  prometheus.Counter
//	    runHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordScore(pairs uint64, duration time.Duration) {
//	    p.pairCounter.Add(float64(pairs))
//	}
type MetricsCollector interface {
	// RecordLoad is called once the smaller matrix is held in memory.
	// bytes is the estimated memory charged for it.
	RecordLoad(rows int, bytes int64, duration time.Duration)

	// RecordScore is called after every pair has been scored.
	RecordScore(pairs uint64, duration time.Duration)

	// RecordSpill is called when the external sort wrote chunk files.
	RecordSpill(chunks int, bytes int64)

	// RecordRun is called at the end of each Correlate call.
	// err is nil if successful.
	RecordRun(results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, int64, time.Duration) {}
func (NoopMetricsCollector) RecordScore(uint64, time.Duration)    {}
func (NoopMetricsCollector) RecordSpill(int, int64)               {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount     atomic.Int64
	LoadedRows    atomic.Int64
	LoadedBytes   atomic.Int64
	ScoredPairs   atomic.Uint64
	ScoreNanos    atomic.Int64
	SpillCount    atomic.Int64
	SpilledChunks atomic.Int64
	SpilledBytes  atomic.Int64
	RunCount      atomic.Int64
	RunErrors     atomic.Int64
	RunResults    atomic.Int64
	RunTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(rows int, bytes int64, _ time.Duration) {
	b.LoadCount.Add(1)
	b.LoadedRows.Add(int64(rows))
	b.LoadedBytes.Add(bytes)
}

// RecordScore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScore(pairs uint64, duration time.Duration) {
	b.ScoredPairs.Add(pairs)
	b.ScoreNanos.Add(duration.Nanoseconds())
}

// RecordSpill implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSpill(chunks int, bytes int64) {
	b.SpillCount.Add(1)
	b.SpilledChunks.Add(int64(chunks))
	b.SpilledBytes.Add(bytes)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(results int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.RunResults.Add(int64(results))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadedRows:    b.LoadedRows.Load(),
		LoadedBytes:   b.LoadedBytes.Load(),
		ScoredPairs:   b.ScoredPairs.Load(),
		SpillCount:    b.SpillCount.Load(),
		SpilledChunks: b.SpilledChunks.Load(),
		SpilledBytes:  b.SpilledBytes.Load(),
		RunCount:      b.RunCount.Load(),
		RunErrors:     b.RunErrors.Load(),
		RunResults:    b.RunResults.Load(),
		RunAvgNanos:   b.getAvgRunNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadedRows    int64
	LoadedBytes   int64
	ScoredPairs   uint64
	SpillCount    int64
	SpilledChunks int64
	SpilledBytes  int64
	RunCount      int64
	RunErrors     int64
	RunResults    int64
	RunAvgNanos   int64
}

// engineObserver forwards engine events to a MetricsCollector.
type engineObserver struct {
	mc MetricsCollector
}

func (o engineObserver) OnLoad(rows int, bytes int64, d time.Duration) { o.mc.RecordLoad(rows, bytes, d) }
func (o engineObserver) OnScore(pairs uint64, d time.Duration)         { o.mc.RecordScore(pairs, d) }
func (o engineObserver) OnSpill(chunks int, bytes int64)               { o.mc.RecordSpill(chunks, bytes) }

// OnRun is a no-op: Correlate records the run itself so that inspect
// failures are counted too.
func (o engineObserver) OnRun(int, time.Duration, error) {}
