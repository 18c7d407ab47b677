// Package fixedvec provides Vec, a growable sequence whose capacity is fixed
// when it is created.
//
// A Vec allocates its slots once, in New, or borrows caller storage through
// Over. Nothing after construction allocates: Push, Insert, ExtendFromSlice and
// friends either fit or return ErrFull, leaving the Vec untouched and the
// rejected value with the caller.
//
//	v := fixedvec.New[int](4)
//	for i := range 5 {
//	    if err := v.Push(i); err != nil {
//	        // i == 4; v still holds 0..3
//	    }
//	}
//
// # Ownership
//
// The Vec owns the elements in [0, Len()). When it destroys one (Truncate,
// Clear, Set, or a Drain loop that stops early) the slot is reset to the zero
// value and the WithDrop hook, if any, runs exactly once for that element.
// Elements moved out to the caller (Pop, Remove, SwapRemove, values yielded by
// Drain) are the caller's and are never passed to the hook.
//
// # Contract violations
//
// Index arguments outside the live range, and negative capacities, are bugs in
// the caller. They panic with a fatal *errors.ClassifiedError wrapping
// errors.ErrContractViolation. Check Len() before indexing.
package fixedvec
