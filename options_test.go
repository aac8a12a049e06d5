package ggca

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/ggca/adjustment"
	"github.com/hupe1980/ggca/correlation"
	"github.com/hupe1980/ggca/extsort"
)

func TestApplyOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)

	assert.Equal(t, correlation.Pearson, o.correlation)
	assert.Equal(t, adjustment.Bonferroni, o.adjustment)
	assert.Equal(t, 0.0, o.threshold)
	assert.Equal(t, extsort.DefaultBufferSize, o.sortBufferSize)
	assert.Equal(t, extsort.DefaultMaxOpenChunks, o.maxOpenChunks)
	assert.Equal(t, extsort.CompressionNone, o.compression)
	assert.Zero(t, o.workers)
	assert.Zero(t, o.memoryLimit)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
}

func TestApplyOptions(t *testing.T) {
	o := applyOptions([]Option{
		WithCorrelation(correlation.Kendall),
		WithAdjustment(adjustment.BenjaminiYekutieli),
		WithThreshold(0.7),
		WithSortBufferSize(0),
		WithMaxOpenChunks(1),
		WithCompression(extsort.CompressionLZ4),
		WithWorkers(2),
		WithMemoryLimit(1 << 20),
		WithSpillIOLimit(1 << 10),
		WithTempDir("/scratch"),
		WithMetricsCollector(nil),
		WithLogger(nil),
		nil,
	})

	assert.Equal(t, correlation.Kendall, o.correlation)
	assert.Equal(t, adjustment.BenjaminiYekutieli, o.adjustment)
	assert.Equal(t, 0.7, o.threshold)
	assert.Equal(t, 1, o.sortBufferSize)
	assert.Equal(t, 2, o.maxOpenChunks)
	assert.Equal(t, extsort.CompressionLZ4, o.compression)
	assert.Equal(t, 2, o.workers)
	assert.Equal(t, int64(1<<20), o.memoryLimit)
	assert.Equal(t, int64(1<<10), o.spillIOLimit)
	assert.Equal(t, "/scratch", o.tempDir)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
}

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector
	m.RecordLoad(10, 640, 0)
	m.RecordScore(100, 0)
	m.RecordSpill(3, 4096)
	m.RecordRun(7, 2000, nil)
	m.RecordRun(0, 4000, assert.AnError)

	s := m.GetStats()
	assert.Equal(t, int64(1), s.LoadCount)
	assert.Equal(t, int64(10), s.LoadedRows)
	assert.Equal(t, uint64(100), s.ScoredPairs)
	assert.Equal(t, int64(3), s.SpilledChunks)
	assert.Equal(t, int64(4096), s.SpilledBytes)
	assert.Equal(t, int64(2), s.RunCount)
	assert.Equal(t, int64(1), s.RunErrors)
	assert.Equal(t, int64(7), s.RunResults)
	assert.Equal(t, int64(3000), s.RunAvgNanos)
}
