package types

import "context"

// Hooks defines callbacks for board lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// to avoid blocking the mutation path. Hooks receive the board's lifecycle
// context, which is cancelled during shutdown.
//
// Hook execution behavior:
//   - Hooks run concurrently and may not complete before Stop() returns
//   - Hook errors are logged but never fail board operations
//
// Implementations should complete quickly, respect context cancellation,
// and be idempotent (a hook may fire more than once for the same event
// after refetch churn).
type Hooks struct {
	// OnMutationApplied is called when an optimistic change becomes
	// visible locally, before the remote round trip resolves.
	OnMutationApplied func(ctx context.Context, intent MutationIntent) error

	// OnMutationResolved is called when the remote round trip resolves,
	// with OutcomeConfirmed or OutcomeReverted. Rejected and no-op intents
	// never reach this hook.
	OnMutationResolved func(ctx context.Context, result MutationResult) error

	// OnPartitionChanged is called after every partition recompute with
	// the new snapshot.
	OnPartitionChanged func(ctx context.Context, partition PartitionMap) error

	// OnError is called when a recoverable error occurs (failed refetch,
	// failed audit write, presence transport trouble).
	OnError func(ctx context.Context, err error) error
}
