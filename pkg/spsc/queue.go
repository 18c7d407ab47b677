package spsc

import (
	"fmt"
	"iter"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/c360/fixedcap/errors"
)

// ErrFull is returned by Enqueue when every usable slot is occupied. The
// queue is unchanged and the caller keeps the item.
var ErrFull = errors.ErrCapacityExceeded

// Queue is a bounded, lock-free queue for exactly one producer and one
// consumer. It holds slots-1 items: one slot stays empty so that a full queue
// (tail+1 == head) and an empty one (tail == head) differ.
//
// head is written only by the consumer and tail only by the producer. Each
// side publishes its cursor with an atomic store after touching the slot, and
// reads the other side's cursor with an atomic load before touching a slot,
// so a slot's contents are always visible before the cursor that exposes it.
type Queue[T any] struct {
	_    cpu.CacheLinePad
	head atomic.Uint64 // next slot to read
	_    cpu.CacheLinePad
	tail atomic.Uint64 // next slot to write
	_    cpu.CacheLinePad

	buf   []T
	slots uint64
	mode  Mode
	drop  func(T)
	split atomic.Bool

	producer Producer[T]
	_        cpu.CacheLinePad
	consumer Consumer[T]
	_        cpu.CacheLinePad
}

// Producer is the enqueue side of a Queue. Only one goroutine may use it at
// a time.
type Producer[T any] struct {
	q         *Queue[T]
	tail      uint64 // own copy; only this side writes tail
	headCache uint64
	enqueued  atomic.Uint64
	rejected  atomic.Uint64
}

// Consumer is the dequeue side of a Queue. Only one goroutine may use it at
// a time.
type Consumer[T any] struct {
	q         *Queue[T]
	head      uint64 // own copy; only this side writes head
	tailCache uint64
	dequeued  atomic.Uint64
	dropped   atomic.Uint64
}

// New returns an empty queue with the given number of slots, holding at most
// slots-1 items. slots must be at least 2.
func New[T any](slots int, options ...Option[T]) (*Queue[T], error) {
	if slots < 2 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %d slots, need at least 2", errors.ErrInvalidCapacity, slots),
			"Queue", "New", "validate slots")
	}

	opts := applyOptions(options...)
	if opts.mode != CrossCore && opts.mode != SingleCore {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: mode %d", errors.ErrInvalidConfig, opts.mode),
			"Queue", "New", "validate mode")
	}

	q := &Queue[T]{
		buf:   make([]T, slots),
		slots: uint64(slots),
		mode:  opts.mode,
		drop:  opts.drop,
	}
	q.producer.q = q
	q.consumer.q = q

	if opts.metricsReg != nil {
		if err := registerMetrics(q, opts.metricsReg, opts.metricsPrefix); err != nil {
			return nil, errors.WrapTransient(err, "Queue", "New", "metrics registration")
		}
	}

	return q, nil
}

// MustNew is New for package-level queues; it panics on error.
func MustNew[T any](slots int, options ...Option[T]) *Queue[T] {
	q, err := New(slots, options...)
	if err != nil {
		panic(err)
	}
	return q
}

// Split hands out the queue's only Producer and only Consumer. A second call
// panics: two producers or two consumers would break the queue.
func (q *Queue[T]) Split() (*Producer[T], *Consumer[T]) {
	if !q.split.CompareAndSwap(false, true) {
		errors.ContractViolation(errors.ErrRoleTaken, "Queue", "Split", "hand out handles")
	}
	return &q.producer, &q.consumer
}

// Mode returns the mode the queue was built with.
func (q *Queue[T]) Mode() Mode { return q.mode }

// Cap returns the number of items the queue can hold (slots-1).
func (q *Queue[T]) Cap() int { return int(q.slots - 1) }

// Len returns the number of queued items. Under concurrent use it is a
// snapshot that may be stale as soon as it returns.
func (q *Queue[T]) Len() int {
	tail := q.tail.Load()
	head := q.head.Load()
	return int((tail + q.slots - head) % q.slots)
}

// IsEmpty reports whether the queue held no items at the moment of the call.
func (q *Queue[T]) IsEmpty() bool {
	return q.head.Load() == q.tail.Load()
}

// IsFull reports whether the queue had no free slot at the moment of the call.
func (q *Queue[T]) IsFull() bool {
	return q.next(q.tail.Load()) == q.head.Load()
}

// Iter yields the queued items oldest first without removing them.
//
// The caller must ensure neither side enqueues or dequeues while the sequence
// is being ranged over; the queue does not detect it.
func (q *Queue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		tail := q.tail.Load()
		for i := q.head.Load(); i != tail; i = q.next(i) {
			if !yield(q.buf[i]) {
				return
			}
		}
	}
}

// Pointers is Iter yielding pointers for in-place mutation, under the same
// quiescence requirement.
func (q *Queue[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		tail := q.tail.Load()
		for i := q.head.Load(); i != tail; i = q.next(i) {
			if !yield(&q.buf[i]) {
				return
			}
		}
	}
}

func (q *Queue[T]) next(i uint64) uint64 {
	i++
	if i == q.slots {
		return 0
	}
	return i
}

// Enqueue appends item. It never blocks: when the queue is full it returns
// ErrFull and the item stays with the caller.
func (p *Producer[T]) Enqueue(item T) error {
	q := p.q
	tail := p.tail
	next := q.next(tail)

	if q.mode == SingleCore || next == p.headCache {
		p.headCache = q.head.Load()
		if next == p.headCache {
			p.rejected.Add(1)
			return ErrFull
		}
	}

	q.buf[tail] = item
	q.tail.Store(next)
	p.tail = next
	p.enqueued.Add(1)
	return nil
}

// Cap returns the queue's capacity.
func (p *Producer[T]) Cap() int { return p.q.Cap() }

// Len returns an advisory item count.
func (p *Producer[T]) Len() int { return p.q.Len() }

// IsFull reports whether Enqueue would fail right now.
func (p *Producer[T]) IsFull() bool {
	return p.q.next(p.tail) == p.q.head.Load()
}

// IsEmpty returns an advisory emptiness check.
func (p *Producer[T]) IsEmpty() bool { return p.q.IsEmpty() }

// Dequeue removes and returns the oldest item, or false if the queue is
// empty. It never blocks.
func (c *Consumer[T]) Dequeue() (T, bool) {
	var zero T
	q := c.q
	head := c.head

	if q.mode == SingleCore || head == c.tailCache {
		c.tailCache = q.tail.Load()
		if head == c.tailCache {
			return zero, false
		}
	}

	item := q.buf[head]
	q.buf[head] = zero
	next := q.next(head)
	q.head.Store(next)
	c.head = next
	c.dequeued.Add(1)
	return item, true
}

// Peek returns the oldest item without removing it.
func (c *Consumer[T]) Peek() (T, bool) {
	var zero T
	q := c.q
	if q.mode == SingleCore || c.head == c.tailCache {
		c.tailCache = q.tail.Load()
		if c.head == c.tailCache {
			return zero, false
		}
	}
	return q.buf[c.head], true
}

// Drain removes every queued item, passing each to the queue's drop hook,
// and returns how many were removed. Items enqueued while Drain runs may or
// may not be included.
func (c *Consumer[T]) Drain() int {
	n := 0
	for {
		item, ok := c.Dequeue()
		if !ok {
			return n
		}
		n++
		c.dropped.Add(1)
		if c.q.drop != nil {
			c.q.drop(item)
		}
	}
}

// Cap returns the queue's capacity.
func (c *Consumer[T]) Cap() int { return c.q.Cap() }

// Len returns an advisory item count.
func (c *Consumer[T]) Len() int { return c.q.Len() }

// IsEmpty reports whether Dequeue would fail right now.
func (c *Consumer[T]) IsEmpty() bool {
	return c.head == c.q.tail.Load()
}

// IsFull returns an advisory fullness check.
func (c *Consumer[T]) IsFull() bool { return c.q.IsFull() }
