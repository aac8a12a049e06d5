package engine

import "time"

// MetricsObserver receives pipeline metrics.
type MetricsObserver interface {
	// OnLoad is called once the smaller matrix is materialized.
	OnLoad(rows int, bytes int64, duration time.Duration)

	// OnScore is called after all pairs are scored.
	OnScore(pairs uint64, duration time.Duration)

	// OnSpill is called when the sort spilled to disk.
	OnSpill(chunks int, bytes int64)

	// OnRun is called when the run completes.
	OnRun(results int, duration time.Duration, err error)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnLoad(int, int64, time.Duration) {}
func (NoopMetricsObserver) OnScore(uint64, time.Duration)    {}
func (NoopMetricsObserver) OnSpill(int, int64)               {}
func (NoopMetricsObserver) OnRun(int, time.Duration, error)  {}
