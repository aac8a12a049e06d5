// Package resource governs the resources of one correlation run.
//
// The Controller manages three resource types:
//
//   - Memory: track and limit the bytes held by the materialized matrix and the
//     sort buffer (non-blocking, fail-fast)
//   - Workers: limit concurrent pair-scoring goroutines
//   - IO: rate-limit sort chunk writes and reads so a large spill does not
//     starve other tenants of the disk
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Scoring        │  IO Rate Limiter        │
//	│  (fail-fast)    │  Workers (sem)  │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireWorker  │  AcquireIO              │
//	│  ReleaseMemory  │  ReleaseWorker  │  RateLimitedWriter      │
//	│  MemoryUsage    │  Workers        │  RateLimitedReader      │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Management
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded immediately
// if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(rowBytes); err != nil {
//	    return err // the run is aborted, ranks would be incomplete otherwise
//	}
//	defer rc.ReleaseMemory(rowBytes)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops and a nil
// controller reports a single worker.
package resource
