package types

import (
	"context"
	"errors"
)

// Sentinel errors for the taskflow library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Board errors - Public API errors returned by the Board component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRemoteServiceRequired is returned when the remote service is nil.
	ErrRemoteServiceRequired = errors.New("remote service is required")

	// ErrNoLanes is returned when a board is created without any lanes.
	ErrNoLanes = errors.New("at least one lane is required")

	// ErrAlreadyStarted is returned when Start is called on an already running board.
	ErrAlreadyStarted = errors.New("board already started")

	// ErrNotStarted is returned when operations require a started board.
	ErrNotStarted = errors.New("board not started")

	// ErrInvalidIntent is returned when a mutation intent is structurally malformed.
	ErrInvalidIntent = errors.New("invalid mutation intent")

	// ErrMutationInFlight is returned when an intent targets an item that
	// already has an outstanding mutation. Racing intents are rejected
	// outright, never queued: queuing would let a stale snapshot win a
	// later rollback.
	ErrMutationInFlight = errors.New("mutation already in flight for item")
)

// Remote errors - Failures surfaced by the RemoteService boundary.
var (
	// ErrItemNotFound is returned when the target item vanished between
	// intent creation and remote confirmation.
	ErrItemNotFound = errors.New("item not found")

	// ErrAssigneeNotFound is returned when the target assignee vanished
	// between intent creation and remote confirmation.
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrAccessDenied is returned when a bulk action targets an item the
	// caller cannot access. Authorization is all-or-nothing: nothing was
	// mutated.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidPayload is returned when a bulk action payload does not
	// match its action variant.
	ErrInvalidPayload = errors.New("invalid bulk action payload")

	// ErrRemoteUnavailable indicates a transient network or timeout
	// failure. The canonical remote state was never changed, so the
	// condition is retryable, not data loss.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)

// Gesture errors - Returned by the drag gesture state machine.
var (
	// ErrDragActive is returned when a drag begins while another is active.
	ErrDragActive = errors.New("another drag is already active")

	// ErrNoActiveDrag is returned when a transition requires an active drag.
	ErrNoActiveDrag = errors.New("no active drag")
)

// IsNotFound reports whether the error is a not-found failure from the
// remote boundary (item or assignee).
//
// Returns:
//   - bool: true if err wraps ErrItemNotFound or ErrAssigneeNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrAssigneeNotFound)
}

// IsTransient reports whether the error is a transient failure: a network
// or timeout condition where the canonical state was never changed.
//
// Context deadline and cancellation errors count as transient because the
// board treats a timed-out mutation identically to a failed one.
//
// Returns:
//   - bool: true if err is retryable without data loss
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrRemoteUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
