package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Timed set
	TimedSetAddsTotal           MetricKey = "timedset_adds_total"
	TimedSetHitsTotal           MetricKey = "timedset_hits_total"
	TimedSetMissesTotal         MetricKey = "timedset_misses_total"
	TimedSetDrainsTotal         MetricKey = "timedset_drains_total"
	TimedSetDrainedKeysTotal    MetricKey = "timedset_drained_keys_total"
	TimedSetYieldedTotal        MetricKey = "timedset_yielded_total"
	TimedSetExpiredSkippedTotal MetricKey = "timedset_expired_skipped_total"

	// Dedupe window
	DedupeFirstSeenTotal  MetricKey = "dedupe_first_seen_total"
	DedupeDuplicatesTotal MetricKey = "dedupe_duplicates_total"

	// HTTP
	HTTPRequestsTotal MetricKey = "http_requests_total"
	HTTPPanicsTotal   MetricKey = "http_panics_total"
)

// Registry stores all metrics.
//
// A nil *Registry is valid and discards every update, so instrumented
// components can run without one.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	if r == nil {
		return
	}

	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}

// Get returns the current value of a single metric, or 0 if it was never set.
func (r *Registry) Get(key MetricKey) int64 {
	if r == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if ptr, ok := r.counters[key]; ok {
		return atomic.LoadInt64(ptr)
	}
	return 0
}
