package taskflow

import "github.com/krockxz/taskflow/types"

// Sentinel errors re-exported from the types subpackage, where they are
// defined so that internal packages can return them without importing the
// root package. Always compare with errors.Is; errors crossing the remote
// boundary arrive wrapped.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrRemoteServiceRequired is returned when the remote service is nil.
	ErrRemoteServiceRequired = types.ErrRemoteServiceRequired

	// ErrNoLanes is returned when a board is created without any lanes.
	ErrNoLanes = types.ErrNoLanes

	// ErrAlreadyStarted is returned when Start is called on a running board.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when operations require a started board.
	ErrNotStarted = types.ErrNotStarted

	// ErrInvalidIntent is returned for structurally malformed intents.
	ErrInvalidIntent = types.ErrInvalidIntent

	// ErrMutationInFlight is returned when an intent targets an item with
	// an outstanding mutation.
	ErrMutationInFlight = types.ErrMutationInFlight

	// ErrItemNotFound is returned when the target item vanished remotely.
	ErrItemNotFound = types.ErrItemNotFound

	// ErrAssigneeNotFound is returned when the target assignee vanished
	// remotely.
	ErrAssigneeNotFound = types.ErrAssigneeNotFound

	// ErrAccessDenied is returned when a bulk action targets an
	// inaccessible item. Nothing was mutated.
	ErrAccessDenied = types.ErrAccessDenied

	// ErrInvalidPayload is returned for malformed bulk action payloads.
	ErrInvalidPayload = types.ErrInvalidPayload

	// ErrRemoteUnavailable indicates a transient network or timeout failure.
	ErrRemoteUnavailable = types.ErrRemoteUnavailable
)

// IsNotFound reports whether the error is a not-found failure from the
// remote boundary (item or assignee).
func IsNotFound(err error) bool {
	return types.IsNotFound(err)
}

// IsTransient reports whether the error is a transient failure that is
// retryable without data loss.
func IsTransient(err error) bool {
	return types.IsTransient(err)
}
