package types

import "context"

// RemoteService is the boundary to the backing store's mutation and fetch
// endpoints.
//
// The board never retries these calls itself; Reassign is required to be
// idempotent by (item, target) at the remote layer so that HTTP-level
// retries are safe. All failures surface to the board's rollback path.
type RemoteService interface {
	// Reassign moves one item to a new assignee. LaneUnassigned clears the
	// assignee. The returned item is the canonical post-mutation state.
	//
	// Errors: ErrItemNotFound, ErrAssigneeNotFound, or a transport error.
	Reassign(ctx context.Context, item ItemID, to LaneID) (WorkItem, error)

	// BulkApply applies one action to a set of items.
	//
	// Authorization is all-or-nothing: if any target item is inaccessible
	// to the caller, no item is mutated and ErrAccessDenied is returned.
	// After authorization passes, partial application on transient
	// per-item failure is permitted; the result lists the items actually
	// mutated.
	//
	// Errors: ErrAccessDenied, ErrInvalidPayload, or a transport error.
	BulkApply(ctx context.Context, items []ItemID, action BulkAction) (BulkResult, error)

	// FetchItems returns the canonical work item set, used for the initial
	// load and for every refetch triggered by an invalidation signal.
	FetchItems(ctx context.Context) ([]WorkItem, error)
}
