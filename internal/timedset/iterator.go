package timedset

import "iter"

// Iterator consumes the values a TimedSet held when Iter was called.
//
// Each call to Next pops one snapshot value and removes it from the set.
// The value is returned only if it had not expired at the moment of
// removal; expired values are dropped silently and Next moves on.
//
// Consequences callers must rely on:
// - A full traversal empties the set of every value in the snapshot,
//   including live ones. To keep a value, Add it again.
// - Values added after Iter was called are not part of the snapshot and
//   survive the traversal.
// - An Iterator cannot be restarted. Call Iter again for a fresh one.
// - Order is unspecified.
type Iterator[T comparable] struct {
	set  *TimedSet[T]
	keys []T
}

// Next advances the iterator. It returns false once the snapshot is used up.
func (it *Iterator[T]) Next() (T, bool) {
	for len(it.keys) > 0 {
		last := len(it.keys) - 1
		key := it.keys[last]
		it.keys = it.keys[:last]

		// Another iterator over the same set may have taken it already.
		if it.set.take(key) {
			return key, true
		}
	}

	var zero T
	return zero, false
}

// Remaining returns how many snapshot values have not been popped yet.
func (it *Iterator[T]) Remaining() int {
	return len(it.keys)
}

// All adapts the iterator for range loops. It shares state with Next:
// breaking out of the loop leaves the rest of the snapshot untouched.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
