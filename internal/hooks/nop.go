package hooks

import (
	"context"

	"github.com/krockxz/taskflow/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.MutationIntent) error = (*NopHooks)(nil).OnMutationApplied
	_ func(context.Context, types.MutationResult) error = (*NopHooks)(nil).OnMutationResolved
	_ func(context.Context, types.PartitionMap) error   = (*NopHooks)(nil).OnPartitionChanged
	_ func(context.Context, error) error                = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnMutationApplied:  h.OnMutationApplied,
		OnMutationResolved: h.OnMutationResolved,
		OnPartitionChanged: h.OnPartitionChanged,
		OnError:            h.OnError,
	}
}

// OnMutationApplied is a no-op implementation.
func (h *NopHooks) OnMutationApplied(ctx context.Context, intent types.MutationIntent) error {
	return nil
}

// OnMutationResolved is a no-op implementation.
func (h *NopHooks) OnMutationResolved(ctx context.Context, result types.MutationResult) error {
	return nil
}

// OnPartitionChanged is a no-op implementation.
func (h *NopHooks) OnPartitionChanged(ctx context.Context, partition types.PartitionMap) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, err error) error {
	return nil
}
