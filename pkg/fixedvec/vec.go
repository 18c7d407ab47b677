package fixedvec

import (
	"fmt"
	"iter"
	"slices"

	"github.com/c360/fixedcap/errors"
)

// ErrFull is returned when an operation needs more room than the Vec has left.
// The Vec is unchanged and the caller still holds the rejected value.
var ErrFull = errors.ErrCapacityExceeded

// Vec is a contiguous, ordered, growable sequence with a capacity fixed at
// construction. Its backing slots are allocated once (or supplied by the
// caller) and never reallocated.
//
// Slots [0, Len()) hold live elements. Slots [Len(), Cap()) are held at the
// zero value so that nothing they once referenced stays reachable.
//
// The zero Vec is empty and has capacity 0. A Vec is not safe for concurrent
// use.
type Vec[T any] struct {
	buf   []T
	n     int
	drop  func(T)
	clone func(T) T
}

// New returns an empty Vec that can hold capacity elements.
func New[T any](capacity int, opts ...Option[T]) *Vec[T] {
	if capacity < 0 {
		errors.ContractViolation(errors.ErrInvalidCapacity, "Vec", "New",
			fmt.Sprintf("capacity %d", capacity))
	}
	return newVec(make([]T, capacity), opts)
}

// Over returns an empty Vec backed by storage. The capacity is len(storage);
// its contents are zeroed. Use it to place the slots in a package-level array
// or a larger arena.
func Over[T any](storage []T, opts ...Option[T]) *Vec[T] {
	clear(storage)
	return newVec(storage[:len(storage):len(storage)], opts)
}

// FromSlice returns a Vec of the given capacity holding copies of src.
// If src does not fit, it returns ErrFull.
func FromSlice[T any](capacity int, src []T, opts ...Option[T]) (*Vec[T], error) {
	if len(src) > capacity {
		return nil, ErrFull
	}
	v := New(capacity, opts...)
	if err := v.ExtendFromSlice(src); err != nil {
		return nil, err
	}
	return v, nil
}

// FromWriter sizes a new Vec to its capacity, lets write fill the slots, and
// keeps the first n elements where n is write's count. Adapts fill-a-buffer
// style readers.
func FromWriter[T any](capacity int, write func([]T) (int, error), opts ...Option[T]) (*Vec[T], error) {
	v := New(capacity, opts...)
	v.ResizeToCapacity()
	n, err := write(v.AsSlice())
	if err != nil {
		v.Clear()
		return nil, err
	}
	if n < 0 || n > capacity {
		errors.ContractViolation(errors.ErrIndexOutOfRange, "Vec", "FromWriter",
			fmt.Sprintf("writer count %d with capacity %d", n, capacity))
	}
	v.Truncate(n)
	return v, nil
}

func newVec[T any](buf []T, opts []Option[T]) *Vec[T] {
	o := applyOptions(opts)
	return &Vec[T]{buf: buf, drop: o.drop, clone: o.clone}
}

// Cap returns the fixed capacity.
func (v *Vec[T]) Cap() int { return len(v.buf) }

// Len returns the number of live elements.
func (v *Vec[T]) Len() int { return v.n }

// IsEmpty reports whether Len() == 0.
func (v *Vec[T]) IsEmpty() bool { return v.n == 0 }

// IsFull reports whether Len() == Cap().
func (v *Vec[T]) IsFull() bool { return v.n == len(v.buf) }

// Push appends item. It returns ErrFull, without modifying the Vec, when there
// is no room.
func (v *Vec[T]) Push(item T) error {
	if v.n == len(v.buf) {
		return ErrFull
	}
	v.buf[v.n] = item
	v.n++
	return nil
}

// Pop removes and returns the last element.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	if v.n == 0 {
		return zero, false
	}
	v.n--
	item := v.buf[v.n]
	v.buf[v.n] = zero
	return item, true
}

// Insert places item at index, shifting [index, Len()) one slot right.
// index == Len() appends. It panics if index > Len() and returns ErrFull if
// the Vec is full.
func (v *Vec[T]) Insert(index int, item T) error {
	if index < 0 || index > v.n {
		outOfRange("Insert", index, v.n+1)
	}
	if v.n == len(v.buf) {
		return ErrFull
	}
	copy(v.buf[index+1:v.n+1], v.buf[index:v.n])
	v.buf[index] = item
	v.n++
	return nil
}

// Remove removes and returns the element at index, shifting the tail left.
// It panics if index >= Len().
func (v *Vec[T]) Remove(index int) T {
	v.check("Remove", index)
	item := v.buf[index]
	copy(v.buf[index:], v.buf[index+1:v.n])
	v.n--
	var zero T
	v.buf[v.n] = zero
	return item
}

// SwapRemove removes and returns the element at index, moving the last
// element into its place. O(1); order is not preserved. It panics if
// index >= Len().
func (v *Vec[T]) SwapRemove(index int) T {
	v.check("SwapRemove", index)
	item := v.buf[index]
	v.n--
	v.buf[index] = v.buf[v.n]
	var zero T
	v.buf[v.n] = zero
	return item
}

// Truncate shortens the Vec to n elements, destroying [n, Len()) from the
// back. It does nothing when n >= Len(). Len is decremented before each drop
// hook runs, so a panicking hook leaves no destroyed element counted as live.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		outOfRange("Truncate", n, v.n+1)
	}
	var zero T
	for v.n > n {
		v.n--
		item := v.buf[v.n]
		v.buf[v.n] = zero
		v.dropItem(item)
	}
}

// Clear destroys every element.
func (v *Vec[T]) Clear() {
	v.Truncate(0)
}

// Resize sets the length to n. Growing fills new slots with copies of fill;
// shrinking truncates. n > Cap() returns ErrFull with no change.
func (v *Vec[T]) Resize(n int, fill T) error {
	if n > len(v.buf) {
		return ErrFull
	}
	if n <= v.n {
		v.Truncate(n)
		return nil
	}
	for v.n < n {
		v.buf[v.n] = v.copyOf(fill)
		v.n++
	}
	return nil
}

// ResizeDefault is Resize with the zero value as fill.
func (v *Vec[T]) ResizeDefault(n int) error {
	var zero T
	return v.Resize(n, zero)
}

// ResizeToCapacity grows the Vec to Cap() with zero values.
func (v *Vec[T]) ResizeToCapacity() {
	_ = v.ResizeDefault(len(v.buf))
}

// ExtendFromSlice appends copies of src. If they do not all fit it returns
// ErrFull and copies nothing.
func (v *Vec[T]) ExtendFromSlice(src []T) error {
	if len(src) > len(v.buf)-v.n {
		return ErrFull
	}
	for _, item := range src {
		v.buf[v.n] = v.copyOf(item)
		v.n++
	}
	return nil
}

// InsertSlice inserts copies of src at position at, shifting the tail right.
// It panics if at > Len() and returns ErrFull, copying nothing, if src does
// not fit.
func (v *Vec[T]) InsertSlice(at int, src []T) error {
	if at < 0 || at > v.n {
		outOfRange("InsertSlice", at, v.n+1)
	}
	tail := v.n
	if err := v.ExtendFromSlice(src); err != nil {
		return err
	}
	// [at, tail) ++ src  ->  src ++ [at, tail)
	rotate(v.buf[at:v.n], tail-at)
	return nil
}

// Extend appends values from seq until it is exhausted or the Vec is full.
// When a value does not fit, Extend stops pulling from seq and returns that
// value with ErrFull. Values already appended stay; the rejected one belongs
// to the caller.
func (v *Vec[T]) Extend(seq iter.Seq[T]) (rejected T, err error) {
	seq(func(item T) bool {
		if v.n == len(v.buf) {
			rejected, err = item, ErrFull
			return false
		}
		v.buf[v.n] = item
		v.n++
		return true
	})
	return rejected, err
}

// Get returns the element at index. It panics if index >= Len().
func (v *Vec[T]) Get(index int) T {
	v.check("Get", index)
	return v.buf[index]
}

// Set replaces the element at index, destroying the previous one.
// It panics if index >= Len().
func (v *Vec[T]) Set(index int, item T) {
	v.check("Set", index)
	old := v.buf[index]
	v.buf[index] = item
	v.dropItem(old)
}

// Ptr returns a pointer to the element at index, valid until the element is
// moved or removed. It panics if index >= Len().
func (v *Vec[T]) Ptr(index int) *T {
	v.check("Ptr", index)
	return &v.buf[index]
}

// AsSlice returns the live elements. Elements may be modified through it, but
// its capacity stops at Len() so append never writes into the Vec's spare
// slots.
func (v *Vec[T]) AsSlice() []T {
	return v.buf[:v.n:v.n]
}

// Clone returns a Vec with the same capacity and options holding copies of
// every element.
func (v *Vec[T]) Clone() *Vec[T] {
	c := &Vec[T]{buf: make([]T, len(v.buf)), drop: v.drop, clone: v.clone}
	_ = c.ExtendFromSlice(v.AsSlice())
	return c
}

// CloneWithCapacity is Clone into a Vec of a different capacity. It returns
// ErrFull when capacity < Len().
func (v *Vec[T]) CloneWithCapacity(capacity int) (*Vec[T], error) {
	if capacity < v.n {
		return nil, ErrFull
	}
	c := &Vec[T]{buf: make([]T, capacity), drop: v.drop, clone: v.clone}
	_ = c.ExtendFromSlice(v.AsSlice())
	return c, nil
}

// String formats the live elements.
func (v *Vec[T]) String() string {
	return fmt.Sprint(v.AsSlice())
}

func (v *Vec[T]) check(op string, index int) {
	if index < 0 || index >= v.n {
		outOfRange(op, index, v.n)
	}
}

func (v *Vec[T]) dropItem(item T) {
	if v.drop != nil {
		v.drop(item)
	}
}

func (v *Vec[T]) copyOf(item T) T {
	if v.clone != nil {
		return v.clone(item)
	}
	return item
}

func outOfRange(op string, index, limit int) {
	errors.ContractViolation(errors.ErrIndexOutOfRange, "Vec", op,
		fmt.Sprintf("bounds check (index %d, limit %d)", index, limit))
}

// rotate moves the first k elements of s to the back, in place.
func rotate[T any](s []T, k int) {
	if k <= 0 || k >= len(s) {
		return
	}
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}
