package spsc

import (
	"github.com/c360/fixedcap/metric"
)

// Option configures a Queue.
type Option[T any] func(*queueOptions[T])

type queueOptions[T any] struct {
	mode Mode
	drop func(T)

	// metricsReg is optional; the queue's statistics are exported through it
	metricsReg    metric.MetricsRegistrar
	metricsPrefix string
}

// WithMode sets the cursor observation mode. Defaults to CrossCore.
func WithMode[T any](mode Mode) Option[T] {
	return func(opts *queueOptions[T]) {
		opts.mode = mode
	}
}

// WithDrop sets a hook that runs exactly once for every element the queue
// destroys through Consumer.Drain. Dequeued elements are never passed to it.
func WithDrop[T any](fn func(T)) Option[T] {
	return func(opts *queueOptions[T]) {
		opts.drop = fn
	}
}

// WithMetrics exports the queue's statistics as Prometheus metrics labelled
// with prefix. Ignored if registry is nil or prefix is empty.
func WithMetrics[T any](registry metric.MetricsRegistrar, prefix string) Option[T] {
	return func(opts *queueOptions[T]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

func applyOptions[T any](options ...Option[T]) *queueOptions[T] {
	opts := &queueOptions[T]{mode: CrossCore}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
