package fixedvec

import "iter"

// All yields index/value pairs front to back.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Values yields the elements front to back.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// Pointers yields index/pointer pairs front to back for in-place mutation.
func (v *Vec[T]) Pointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, &v.buf[i]) {
				return
			}
		}
	}
}

// Backward yields index/value pairs back to front.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.n - 1; i >= 0; i-- {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Drain moves every element out of the Vec, front to back. Ranging over the
// result empties the Vec; elements not reached because the loop stopped early
// or panicked are destroyed through the drop hook. The Vec must not be
// modified from inside the loop.
func (v *Vec[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		n := v.n
		items := v.buf[:n]
		v.n = 0

		var zero T
		i := 0
		defer func() {
			for ; i < n; i++ {
				item := items[i]
				items[i] = zero
				v.dropItem(item)
			}
		}()

		for i < n {
			item := items[i]
			items[i] = zero
			i++
			if !yield(item) {
				return
			}
		}
	}
}
