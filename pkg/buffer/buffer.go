package buffer

import (
	"fmt"
	"iter"

	"github.com/c360/fixedcap/errors"
)

// DropCallback receives a value the buffer is discarding, either because a
// newer push overwrote it or because the buffer was cleared.
type DropCallback[T any] func(item T)

// Circular is a fixed-capacity ring that never rejects a write: once full,
// each Push overwrites the oldest value. It is not safe for concurrent use.
// Statistics and metrics may be read from other goroutines.
type Circular[T any] struct {
	buf   []T
	index int
	n     int

	drop    DropCallback[T]
	stats   *Statistics
	metrics *bufferMetrics
}

// NewCircular creates an empty buffer holding at most capacity values.
func NewCircular[T any](capacity int, opts ...Option[T]) (*Circular[T], error) {
	if capacity < 1 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %d", errors.ErrInvalidCapacity, capacity),
			"Circular", "NewCircular", "capacity validation")
	}
	return newCircular(make([]T, capacity), 0, opts)
}

// FromArray creates a full buffer over items, which becomes the backing
// storage. The write cursor starts at 0, so the first Push overwrites items[0].
func FromArray[T any](items []T, opts ...Option[T]) (*Circular[T], error) {
	if len(items) < 1 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity,
			"Circular", "FromArray", "capacity validation")
	}
	return newCircular(items, len(items), opts)
}

func newCircular[T any](storage []T, n int, options []Option[T]) (*Circular[T], error) {
	opts := applyOptions(options...)
	c := &Circular[T]{
		buf:   storage,
		n:     n,
		drop:  opts.dropCallback,
		stats: NewStatistics(),
	}
	c.stats.UpdateSize(int64(n))

	if opts.metricsReg != nil {
		m, err := newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Circular", "NewCircular", "metrics registration")
		}
		c.metrics = m
		m.updateSize(n, len(storage))
	}
	return c, nil
}

// Push stores item at the write cursor and advances it. If the buffer is
// full the value being replaced is handed to the drop callback, which runs
// only after the buffer state is updated, so a panicking callback cannot
// leave the cursor on the newest value.
func (c *Circular[T]) Push(item T) {
	var old T
	overwrote := c.n == len(c.buf)
	if overwrote {
		old = c.buf[c.index]
	} else {
		c.n++
	}
	c.buf[c.index] = item
	c.index = (c.index + 1) % len(c.buf)

	c.stats.Write()
	if overwrote {
		c.stats.Overwrite()
	} else {
		c.stats.UpdateSize(int64(c.n))
	}
	if c.metrics != nil {
		c.metrics.recordWrite(c.n, len(c.buf), overwrote)
	}

	if overwrote {
		c.dropItem(old)
	}
}

// Cap returns the buffer's fixed capacity.
func (c *Circular[T]) Cap() int { return len(c.buf) }

// Len returns the number of values held, which saturates at Cap.
func (c *Circular[T]) Len() int { return c.n }

// IsEmpty reports whether nothing has been pushed since construction or Clear.
func (c *Circular[T]) IsEmpty() bool { return c.n == 0 }

// IsFull reports whether the next Push will overwrite.
func (c *Circular[T]) IsFull() bool { return c.n == len(c.buf) }

// Index returns the slot the next Push writes to.
func (c *Circular[T]) Index() int { return c.index }

// AsSlice returns the held values in storage order. While the buffer is
// filling this is the pushed prefix, oldest first. Once full it is the whole
// backing array, where the oldest value sits at Index.
// The slice aliases the buffer and is invalidated by the next Push.
func (c *Circular[T]) AsSlice() []T {
	return c.buf[:c.n:c.n]
}

// Ordered appends the held values to dst from oldest to newest.
func (c *Circular[T]) Ordered(dst []T) []T {
	start := c.start()
	dst = append(dst, c.buf[start:c.n]...)
	return append(dst, c.buf[:start]...)
}

// All yields the held values from oldest to newest with their age rank,
// 0 being the oldest.
func (c *Circular[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		start := c.start()
		for i := 0; i < c.n; i++ {
			if !yield(i, c.buf[(start+i)%len(c.buf)]) {
				return
			}
		}
	}
}

// Oldest returns the value the next overwriting Push will replace.
func (c *Circular[T]) Oldest() (T, bool) {
	if c.n == 0 {
		var zero T
		return zero, false
	}
	return c.buf[c.start()], true
}

// Newest returns the most recently pushed value.
func (c *Circular[T]) Newest() (T, bool) {
	if c.n == 0 {
		var zero T
		return zero, false
	}
	return c.buf[(c.index+len(c.buf)-1)%len(c.buf)], true
}

// Clear drops every held value and resets the cursor. Values are dropped
// oldest first.
func (c *Circular[T]) Clear() {
	start := c.start()
	n := c.n
	c.n = 0
	c.index = 0
	for i := 0; i < n; i++ {
		slot := (start + i) % len(c.buf)
		old := c.buf[slot]
		var zero T
		c.buf[slot] = zero
		c.dropItem(old)
	}

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.updateSize(0, len(c.buf))
	}
}

// Stats returns the buffer's statistics tracker.
func (c *Circular[T]) Stats() *Statistics {
	return c.stats
}

// String formats the held values oldest first.
func (c *Circular[T]) String() string {
	return fmt.Sprint(c.Ordered(make([]T, 0, c.n)))
}

// start is the storage slot of the oldest value.
func (c *Circular[T]) start() int {
	if c.n < len(c.buf) {
		return 0
	}
	return c.index
}

func (c *Circular[T]) dropItem(item T) {
	c.stats.Drop()
	if c.metrics != nil {
		c.metrics.recordDrop()
	}
	if c.drop != nil {
		c.drop(item)
	}
}
