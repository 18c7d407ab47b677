// Package fixedcap is the root of a set of fixed-capacity containers whose
// storage is sized once at construction and never grows.
//
// # Containers
//
//   - pkg/fixedvec: Vec, an ordered buffer of at most N values with
//     push/pop/insert/remove, slice views and owning iteration.
//   - pkg/spsc: Queue, a lock-free bounded FIFO for exactly one producer and
//     one consumer, handed out as Producer and Consumer handles by Split.
//   - pkg/buffer: Circular, a ring that keeps the last N values and
//     overwrites the oldest on every push once full.
//
// Capacity exhaustion is an ordinary result: Push and Enqueue return ErrFull
// (errors.ErrCapacityExceeded, classified transient) and the value stays with
// the caller. Breaking a precondition, such as indexing past Len or splitting
// a queue twice, panics with a fatal errors.ClassifiedError wrapping
// errors.ErrContractViolation.
//
// # Supporting packages
//
//   - errors: error classification shared by every package.
//   - metric: Prometheus registry, transfer metrics and the /metrics server.
//   - health: healthy/degraded/unhealthy status for queues and workers.
//   - pkg/retry: backoff schedules for polling a full or empty queue.
//   - pkg/worker: goroutine drivers for both ends of an SPSC queue.
//   - config: scenario configuration for the bench.
//   - cmd/spscbench: runs a producer and consumer over a queue and reports
//     throughput and latency.
//
// # Quick Start
//
//	q, err := spsc.New[Event](1024)
//	if err != nil {
//		return err
//	}
//	producer, consumer := q.Split()
//
//	go func() {
//		for ev := range events {
//			for producer.Enqueue(ev) != nil {
//				runtime.Gosched()
//			}
//		}
//	}()
//
//	for {
//		if ev, ok := consumer.Dequeue(); ok {
//			handle(ev)
//		}
//	}
package fixedcap
