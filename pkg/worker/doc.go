// Package worker drives the two ends of an SPSC queue from goroutines.
//
// A spsc.Queue is lock-free and never blocks: Enqueue fails with ErrFull and
// Dequeue reports empty. This package adds the waiting. Worker is the single
// consumer: it dequeues in order, passes each item to a processor, and backs
// off on the retry schedule while the queue is empty. Sender is the single
// producer: Send retries a full queue on the same kind of schedule until it
// succeeds, the context ends, or the attempts run out.
//
//	q, _ := spsc.New[Event](1024)
//	producer, consumer := q.Split()
//
//	w, err := worker.New(consumer, handle,
//		worker.WithName("events"),
//		worker.WithLogger(logger),
//		worker.WithMetrics(registry.CoreMetrics()),
//	)
//	if err != nil {
//		return err
//	}
//	if err := w.Start(ctx); err != nil {
//		return err
//	}
//	defer w.Stop(5 * time.Second)
//
//	sender, _ := worker.NewSender(producer, worker.WithName("events"))
//	err = sender.Send(ctx, ev)
//
// # Errors
//
// Processor errors classified fatal by the errors package stop the worker;
// Err and Stop return them. Other errors are counted in Stats and logged.
// Stop processes whatever is still queued before returning, while cancelling
// the Start context exits without draining.
//
// Health summarises a worker for the health package: degraded before Start,
// unhealthy once a fatal error stopped it, healthy otherwise.
//
// A Sender must only be used from one goroutine, matching the role
// discipline of the producer handle it wraps.
package worker
