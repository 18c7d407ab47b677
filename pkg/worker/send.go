package worker

import (
	"context"
	"fmt"

	"github.com/c360/fixedcap/errors"
	"github.com/c360/fixedcap/metric"
	"github.com/c360/fixedcap/pkg/retry"
	"github.com/c360/fixedcap/pkg/spsc"
)

// Sender is the single producer of an SPSC queue. Send waits for space
// instead of failing on the first full queue.
type Sender[T any] struct {
	producer *spsc.Producer[T]
	*settings

	wait *retry.Backoff
}

// NewSender wraps producer. The backoff config's MaxAttempts bounds how many
// times one Send tries to enqueue.
func NewSender[T any](producer *spsc.Producer[T], opts ...Option) (*Sender[T], error) {
	if producer == nil {
		return nil, errors.WrapInvalid(ErrNilQueue, "Sender", "NewSender", "producer validation")
	}
	s := applyOptions(opts)
	b, err := retry.NewBackoff(s.backoff)
	if err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Sender", "NewSender", "backoff validation")
	}
	return &Sender[T]{producer: producer, settings: s, wait: b}, nil
}

// Send enqueues item, sleeping on the backoff schedule while the queue is
// full. It returns a transient error wrapping ErrMaxRetriesExceeded and
// ErrCapacityExceeded when attempts run out, or the context error if ctx ends
// first. A Sender must only be used from the producer goroutine.
func (s *Sender[T]) Send(ctx context.Context, item T) error {
	s.wait.Reset()
	attempts := max(s.backoff.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		err := s.producer.Enqueue(item)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordTransfer(s.name, metric.DirectionEnqueued, 1)
			}
			return nil
		}

		if s.metrics != nil {
			s.metrics.RecordTransfer(s.name, metric.DirectionRejected, 1)
		}
		if attempt >= attempts {
			return errors.WrapTransient(
				fmt.Errorf("%w after %d attempts: %w", errors.ErrMaxRetriesExceeded, attempt, err),
				"Sender", "Send", "enqueue")
		}

		if s.metrics != nil {
			s.metrics.RecordBackoff(s.name, SideProducer)
		}
		if err := s.wait.Wait(ctx); err != nil {
			return errors.WrapTransient(err, "Sender", "Send", "wait for space")
		}
	}
}

// Send is a one-shot Sender: it enqueues item into producer, backing off per
// cfg while the queue is full.
func Send[T any](ctx context.Context, producer *spsc.Producer[T], item T, cfg retry.Config) error {
	s, err := NewSender(producer, WithBackoff(cfg))
	if err != nil {
		return err
	}
	return s.Send(ctx, item)
}
