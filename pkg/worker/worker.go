package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/fixedcap/errors"
	"github.com/c360/fixedcap/metric"
	"github.com/c360/fixedcap/pkg/retry"
	"github.com/c360/fixedcap/pkg/spsc"
)

// Worker is the single consumer of an SPSC queue. It dequeues items in order
// and hands each to a processor, backing off while the queue is empty.
type Worker[T any] struct {
	consumer  *spsc.Consumer[T]
	processor func(context.Context, T) error
	*settings

	// Lifecycle management
	lifecycleMu sync.Mutex
	started     bool
	startedAt   time.Time
	quit        chan struct{}
	done        chan struct{}
	err         error

	// Statistics (atomic)
	processed atomic.Int64
	failed    atomic.Int64
	idleWaits atomic.Int64
	lastItem  atomic.Int64 // unix nanos
}

// Stats represents worker statistics
type Stats struct {
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	IdleWaits int64 `json:"idle_waits"`
	Pending   int   `json:"pending"`
}

// New creates a worker draining consumer into processor.
func New[T any](consumer *spsc.Consumer[T], processor func(context.Context, T) error, opts ...Option) (*Worker[T], error) {
	if consumer == nil {
		return nil, errors.WrapInvalid(ErrNilQueue, "Worker", "New", "consumer validation")
	}
	if processor == nil {
		return nil, errors.WrapInvalid(ErrNilProcessor, "Worker", "New", "processor validation")
	}

	s := applyOptions(opts)
	if _, err := retry.NewBackoff(s.backoff); err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Worker", "New", "backoff validation")
	}

	return &Worker[T]{
		consumer:  consumer,
		processor: processor,
		settings:  s,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start launches the consume loop. Cancelling ctx stops the worker without
// draining; Stop drains first.
func (w *Worker[T]) Start(ctx context.Context) error {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true
	w.startedAt = time.Now()
	w.setStatus(metric.WorkerStarting)

	go w.run(ctx)
	return nil
}

// Stop asks the worker to process what is still queued and exit. It returns
// ErrStopTimeout if that takes longer than timeout. Calling Stop again is
// safe.
func (w *Worker[T]) Stop(timeout time.Duration) error {
	w.lifecycleMu.Lock()
	if !w.started {
		w.lifecycleMu.Unlock()
		return ErrNotStarted
	}
	select {
	case <-w.quit:
	default:
		w.setStatus(metric.WorkerStopping)
		close(w.quit)
	}
	w.lifecycleMu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w.done:
		return w.Err()
	case <-timer.C:
		return errors.WrapTransient(ErrStopTimeout, "Worker", "Stop", "drain queue")
	}
}

// Done is closed when the consume loop has exited.
func (w *Worker[T]) Done() <-chan struct{} {
	return w.done
}

// Err returns the fatal processor error that stopped the worker, if any.
func (w *Worker[T]) Err() error {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()
	return w.err
}

// Stats returns current worker statistics
func (w *Worker[T]) Stats() Stats {
	return Stats{
		Processed: w.processed.Load(),
		Failed:    w.failed.Load(),
		IdleWaits: w.idleWaits.Load(),
		Pending:   w.consumer.Len(),
	}
}

func (w *Worker[T]) run(ctx context.Context) {
	defer close(w.done)

	// validated in New
	backoff, _ := retry.NewBackoff(w.backoff)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	w.setStatus(metric.WorkerRunning)
	w.logger.Debug("Worker started", "queue", w.name)

	for {
		if item, ok := w.consumer.Dequeue(); ok {
			backoff.Reset()
			if err := w.process(ctx, item); err != nil {
				w.fail(err)
				return
			}
			continue
		}

		select {
		case <-ctx.Done():
			w.exit("context cancelled")
			return
		case <-w.quit:
			if err := w.drain(ctx); err != nil {
				w.fail(err)
				return
			}
			w.exit("stopped")
			return
		default:
		}

		w.idleWaits.Add(1)
		if w.metrics != nil {
			w.metrics.RecordBackoff(w.name, SideConsumer)
		}
		timer.Reset(backoff.Next())
		select {
		case <-ctx.Done():
			timer.Stop()
			w.exit("context cancelled")
			return
		case <-w.quit:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// drain processes everything left in the queue after Stop.
func (w *Worker[T]) drain(ctx context.Context) error {
	for {
		item, ok := w.consumer.Dequeue()
		if !ok {
			return nil
		}
		if err := w.process(ctx, item); err != nil {
			return err
		}
	}
}

// process runs the processor for one item. Only fatal errors are returned;
// anything else is counted and logged.
func (w *Worker[T]) process(ctx context.Context, item T) error {
	err := w.processor(ctx, item)
	w.lastItem.Store(time.Now().UnixNano())
	w.processed.Add(1)
	if w.metrics != nil {
		w.metrics.RecordTransfer(w.name, metric.DirectionDequeued, 1)
	}
	if err == nil {
		return nil
	}

	w.failed.Add(1)
	if errors.IsFatal(err) {
		return errors.WrapFatal(err, "Worker", "process", "process item")
	}
	w.logger.Warn("Processor failed", "queue", w.name, "error", err, "class", errors.Classify(err))
	return nil
}

func (w *Worker[T]) fail(err error) {
	w.lifecycleMu.Lock()
	w.err = err
	w.lifecycleMu.Unlock()

	w.setStatus(metric.WorkerFailed)
	w.logger.Error("Worker stopped on fatal error", "queue", w.name, "error", err)
}

func (w *Worker[T]) exit(reason string) {
	w.setStatus(metric.WorkerStopped)
	w.logger.Debug("Worker exited", "queue", w.name, "reason", reason,
		"processed", w.processed.Load(), "failed", w.failed.Load())
}

func (w *Worker[T]) setStatus(status int) {
	if w.metrics != nil {
		w.metrics.RecordWorkerStatus(w.name, status)
	}
}
