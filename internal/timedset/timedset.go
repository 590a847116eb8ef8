package timedset

import (
	"time"

	"timed-set/internal/metrics"
)

// TimedSet is a set of values that are each considered present only until
// a fixed TTL has elapsed since their most recent Add.
//
// Design principles:
// - No background sweeping. Expired values stay stored until a traversal
//   consumes them.
// - Contains is a pure read and never removes anything.
// - Iter is destructive: every value present when it is called is removed
//   from the set as the iterator advances, whether or not it is yielded.
//
// A TimedSet is not safe for concurrent use. Callers sharing one across
// goroutines must guard it with their own lock.
type TimedSet[T comparable] struct {
	ttl     time.Duration
	entries map[T]time.Time
	metrics *metrics.Registry
}

// New returns an empty set whose entries expire ttl after insertion.
func New[T comparable](ttl time.Duration, opts ...Option) *TimedSet[T] {
	var o options
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &TimedSet[T]{
		ttl:     ttl,
		entries: make(map[T]time.Time),
		metrics: o.metrics,
	}
}

// TTL returns the lifetime applied to every insertion.
func (s *TimedSet[T]) TTL() time.Duration { return s.ttl }

// Len returns the number of stored entries, including expired ones that no
// traversal has consumed yet.
func (s *TimedSet[T]) Len() int { return len(s.entries) }

// Add inserts value, or refreshes its expiry to now+TTL if already stored.
func (s *TimedSet[T]) Add(value T) {
	s.entries[value] = time.Now().Add(s.ttl)
	s.metrics.Inc(metrics.TimedSetAddsTotal)
}

// Contains reports whether value was added and has not yet expired.
func (s *TimedSet[T]) Contains(value T) bool {
	expiresAt, ok := s.entries[value]
	if ok && time.Now().Before(expiresAt) {
		s.metrics.Inc(metrics.TimedSetHitsTotal)
		return true
	}
	s.metrics.Inc(metrics.TimedSetMissesTotal)
	return false
}

// Iter snapshots the values stored right now and returns an iterator that
// consumes them one by one. See Iterator for the exact contract.
func (s *TimedSet[T]) Iter() *Iterator[T] {
	keys := make([]T, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.metrics.Inc(metrics.TimedSetDrainsTotal)
	return &Iterator[T]{set: s, keys: keys}
}

// take removes value and reports whether it was still live at removal time.
// A value that is no longer stored is not live.
func (s *TimedSet[T]) take(value T) bool {
	expiresAt, ok := s.entries[value]
	if !ok {
		return false
	}
	delete(s.entries, value)
	s.metrics.Inc(metrics.TimedSetDrainedKeysTotal)

	if time.Now().Before(expiresAt) {
		s.metrics.Inc(metrics.TimedSetYieldedTotal)
		return true
	}
	s.metrics.Inc(metrics.TimedSetExpiredSkippedTotal)
	return false
}
