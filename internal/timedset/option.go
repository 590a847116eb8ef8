package timedset

import "timed-set/internal/metrics"

// Option configures a TimedSet at construction.
type Option interface {
	apply(*options)
}

type options struct {
	metrics *metrics.Registry
}

// helper Option implementation to quickly define new options
type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithMetrics makes the set count adds, lookups and traversal outcomes in
// reg. Without it the set is uninstrumented.
func WithMetrics(reg *metrics.Registry) Option {
	return optionFunc(func(o *options) {
		o.metrics = reg
	})
}
