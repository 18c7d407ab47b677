// Package retry provides exponential backoff for transient failures.
//
// # Overview
//
// Bounded containers report exhaustion instead of blocking. This package gives callers
// the two ways of waiting that sit on top of that: Do, which re-runs an operation until it
// succeeds or attempts run out, and Backoff, a stateful delay sequence for hand-written
// polling loops.
//
// # Configuration Presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay
//   - Quick(): 10 attempts, 50ms-1s delay
//   - Persistent(): 30 attempts, 200ms-10s delay
//   - Spin(): 1000 attempts, 1µs-1ms delay, no jitter (queue polling)
//
// # Usage Examples
//
// Retry a full queue:
//
//	err := retry.Do(ctx, retry.Spin(), func() error {
//	    return producer.Enqueue(item)
//	})
//
// Poll an empty queue:
//
//	backoff, _ := retry.NewBackoff(retry.Spin())
//	for {
//	    item, ok := consumer.Dequeue()
//	    if !ok {
//	        if err := backoff.Wait(ctx); err != nil {
//	            return err
//	        }
//	        continue
//	    }
//	    backoff.Reset()
//	    handle(item)
//	}
//
// Errors wrapped with NonRetryable stop Do immediately.
//
// # Context Cancellation
//
// Do and Backoff.Wait return as soon as the context is cancelled, including mid-delay.
//
// # Thread Safety
//
// Do and DoWithResult are safe for concurrent use. A Backoff belongs to one goroutine.
package retry
