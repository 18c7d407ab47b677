// Package errors provides standardized error handling patterns for fixedcap containers.
//
// # Overview
//
// The errors package implements a three-class error classification system: Transient
// (temporary, retryable), Invalid (bad input or configuration, non-retryable), and Fatal
// (unrecoverable, stop processing).
//
// Containers in this module report exactly one runtime condition as an error: capacity
// exhaustion. Everything else a caller can get wrong (an index past the live length, a
// second producer handle for a single-producer queue) is a bug in the calling code and
// aborts with a panic carrying a fatal classified error.
//
// # Error Classification
//
//   - Transient: ErrCapacityExceeded, ErrMaxRetriesExceeded, context cancellation. A full
//     queue becomes writable again once the consumer drains it.
//   - Invalid: ErrInvalidCapacity, ErrInvalidConfig, ErrConfigNotFound.
//   - Fatal: ErrContractViolation and the causes it wraps (ErrIndexOutOfRange,
//     ErrRoleTaken).
//
// Classification supports errors.Is(), errors.As() and wrapping chains. A
// *ClassifiedError anywhere in the chain takes precedence over sentinel matching.
//
// # Quick Start
//
//	if err := producer.Enqueue(item); err != nil {
//	    if errors.IsTransient(err) {
//	        // item is still ours; back off and try again
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// # Contract Violations
//
// ContractViolation panics with a fatal *ClassifiedError that wraps ErrContractViolation
// and the supplied cause:
//
//	if index >= v.Len() {
//	    errors.ContractViolation(errors.ErrIndexOutOfRange, "Vec", "Remove", "bounds check")
//	}
//
// Recovering code can inspect the panic value with errors.Is.
//
// # Retrying
//
// Retry policy lives in pkg/retry; this package only says whether an error is
// worth retrying. IsTransient is true for ErrCapacityExceeded and
// ErrMaxRetriesExceeded, so a caller that gave up can still be retried later.
//
// The retry hot path never allocates for the capacity sentinel: ErrCapacityExceeded is
// returned as-is by the containers and classified by identity.
package errors
