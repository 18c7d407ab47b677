package fixedvec

import (
	"iter"
	"slices"
)

// Equal reports whether a and b hold the same elements in the same order.
// Capacities are not compared.
func Equal[T comparable](a, b *Vec[T]) bool {
	return slices.Equal(a.AsSlice(), b.AsSlice())
}

// StartsWith reports whether prefix is a prefix of v. An empty prefix always
// matches.
func StartsWith[T comparable](v *Vec[T], prefix []T) bool {
	s := v.AsSlice()
	return len(prefix) <= len(s) && slices.Equal(s[:len(prefix)], prefix)
}

// EndsWith reports whether suffix is a suffix of v. An empty suffix always
// matches.
func EndsWith[T comparable](v *Vec[T], suffix []T) bool {
	s := v.AsSlice()
	return len(suffix) <= len(s) && slices.Equal(s[len(s)-len(suffix):], suffix)
}

// Index returns the position of the first element equal to x, or -1.
func Index[T comparable](v *Vec[T], x T) int {
	return slices.Index(v.AsSlice(), x)
}

// Contains reports whether x is in v.
func Contains[T comparable](v *Vec[T], x T) bool {
	return Index(v, x) >= 0
}

// Collect builds a Vec of the given capacity from seq. It returns ErrFull if
// seq yields more than capacity values; everything pulled from seq, including
// the value that did not fit, then goes through the drop hook.
func Collect[T any](capacity int, seq iter.Seq[T], opts ...Option[T]) (*Vec[T], error) {
	v := New(capacity, opts...)
	if rejected, err := v.Extend(seq); err != nil {
		v.dropItem(rejected)
		v.Clear()
		return nil, err
	}
	return v, nil
}
