// Package spsc provides a bounded, lock-free queue for exactly one producer
// and one consumer.
//
// The queue never blocks and never allocates after New. Enqueue on a full
// queue returns ErrFull and leaves the item with the caller; Dequeue on an
// empty queue returns false. Waiting, if any, is the caller's business (see
// the retry and worker packages).
//
//	q, err := spsc.New[Event](1024)
//	if err != nil {
//	    return err
//	}
//	producer, consumer := q.Split()
//
//	go func() {
//	    for ev := range events {
//	        for producer.Enqueue(ev) != nil {
//	            runtime.Gosched()
//	        }
//	    }
//	}()
//
//	for {
//	    if ev, ok := consumer.Dequeue(); ok {
//	        handle(ev)
//	    }
//	}
//
// # Roles
//
// Split returns the only Producer and the only Consumer and panics if called
// again, so each role can have at most one handle. A handle must not be used
// from two goroutines at once.
//
// # Ordering
//
// Cursors are sync/atomic values. Go's atomics are sequentially consistent,
// which is stronger than the acquire/release pairing the algorithm needs: a
// slot written before the producer stores tail is visible to a consumer that
// loaded that tail, and a slot cleared before the consumer stores head is free
// for a producer that loaded that head.
//
// # Modes
//
// CrossCore (the default) keeps a private cached copy of the opposite cursor
// and reloads it only when the queue looks full or empty. SingleCore reloads
// it on every call. Both are correct on any hardware; the mode only changes how
// often the shared cache line is read.
//
// # Statistics
//
// Stats is always available. WithMetrics additionally exposes the same
// counters to Prometheus as scrape-time functions.
package spsc
