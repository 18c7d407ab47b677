package worker

import (
	"errors"

	cerrors "github.com/c360/fixedcap/errors"
)

// Sentinel errors for worker operations
var (
	// ErrNotStarted indicates Stop or Wait was called before Start
	ErrNotStarted = cerrors.ErrNotStarted

	// ErrAlreadyStarted indicates Start() was called on an already-started worker
	ErrAlreadyStarted = cerrors.ErrAlreadyStarted

	// ErrStopTimeout indicates the worker didn't stop within the timeout
	ErrStopTimeout = cerrors.ErrStopTimeout

	// ErrNilProcessor indicates a nil processor function was provided
	ErrNilProcessor = errors.New("processor function cannot be nil")

	// ErrNilQueue indicates a nil producer or consumer handle was provided
	ErrNilQueue = errors.New("queue handle cannot be nil")
)
