package spsc

// Mode selects how each side observes the other side's cursor. It is fixed
// for the life of a queue.
//
// Both modes publish and read cursors with sync/atomic, which is sequentially
// consistent in Go; neither mode relaxes ordering. They differ only in how
// often the opposite cursor is loaded, and SingleCore loads it more often, so
// it is not the cheaper mode when the two sides run in parallel.
type Mode int

const (
	// CrossCore is for a producer and consumer running in parallel. Each side
	// caches the last value it read of the opposite cursor and reloads it only
	// when the queue looks full (producer) or empty (consumer), so the shared
	// cache line is touched as rarely as possible.
	CrossCore Mode = iota

	// SingleCore is for sides that only interleave, such as two goroutines
	// pinned to one OS thread with runtime.LockOSThread or a callback and the
	// code it preempts. The opposite cursor is loaded on every call; there is
	// no cross-core traffic to save.
	SingleCore
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case CrossCore:
		return "cross-core"
	case SingleCore:
		return "single-core"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name as produced by String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "cross-core", "crosscore", "":
		return CrossCore, true
	case "single-core", "singlecore":
		return SingleCore, true
	default:
		return CrossCore, false
	}
}
