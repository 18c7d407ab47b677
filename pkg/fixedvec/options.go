package fixedvec

// Option configures a Vec.
type Option[T any] func(*options[T])

type options[T any] struct {
	drop  func(T)
	clone func(T) T
}

// WithDrop sets a hook that runs exactly once for every element the Vec
// destroys (Clear, Truncate, Set, an abandoned Drain). Elements handed back to
// the caller (Pop, Remove, SwapRemove, values yielded by Drain) are not passed
// to it.
func WithDrop[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		o.drop = fn
	}
}

// WithClone sets the element copy used by ExtendFromSlice, InsertSlice, Resize
// and Clone. Without it elements are copied by assignment.
func WithClone[T any](fn func(T) T) Option[T] {
	return func(o *options[T]) {
		o.clone = fn
	}
}

func applyOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
