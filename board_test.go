package taskflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/krockxz/taskflow/types"
)

// fakeRemote is an in-memory RemoteService with scriptable failures.
type fakeRemote struct {
	mu    sync.Mutex
	items map[types.ItemID]types.WorkItem
	order []types.ItemID

	reassignErr error
	bulkErr     error
	fetchErr    error

	// blockReassign, when non-nil, is closed by the test to release a
	// Reassign call that is being held open.
	blockReassign chan struct{}

	fetches atomic.Int32
}

func newFakeRemote(items ...types.WorkItem) *fakeRemote {
	r := &fakeRemote{items: make(map[types.ItemID]types.WorkItem, len(items))}
	for _, item := range items {
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}

	return r
}

func (r *fakeRemote) Reassign(ctx context.Context, item types.ItemID, to types.LaneID) (types.WorkItem, error) {
	if r.blockReassign != nil {
		select {
		case <-r.blockReassign:
		case <-ctx.Done():
			return types.WorkItem{}, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reassignErr != nil {
		return types.WorkItem{}, r.reassignErr
	}

	it, ok := r.items[item]
	if !ok {
		return types.WorkItem{}, types.ErrItemNotFound
	}

	if to.IsUnassigned() {
		it.Assignee = ""
	} else {
		it.Assignee = to
	}
	it.UpdatedAt = time.Now()
	r.items[item] = it

	return it, nil
}

func (r *fakeRemote) BulkApply(_ context.Context, items []types.ItemID, action types.BulkAction) (types.BulkResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bulkErr != nil {
		return types.BulkResult{}, r.bulkErr
	}

	var affected []types.ItemID
	for _, id := range items {
		it, ok := r.items[id]
		if !ok {
			continue
		}
		switch action.Name {
		case types.BulkReassign:
			it.Assignee = action.Assignee
		case types.BulkSetStatus:
			it.Status = action.Status
		case types.BulkSetPriority:
			it.Priority = action.Priority
		case types.BulkDelete:
			delete(r.items, id)
		}
		if action.Name != types.BulkDelete {
			r.items[id] = it
		}
		affected = append(affected, id)
	}

	return types.BulkResult{Affected: affected}, nil
}

func (r *fakeRemote) FetchItems(_ context.Context) ([]types.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fetches.Add(1)
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}

	out := make([]types.WorkItem, 0, len(r.items))
	for _, id := range r.order {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}

	return out, nil
}

func (r *fakeRemote) setAssignee(item types.ItemID, to types.LaneID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it := r.items[item]
	it.Assignee = to
	r.items[item] = it
}

func startTestBoard(t *testing.T, remote types.RemoteService, lanes []types.LaneID, opts ...Option) *Board {
	t.Helper()

	cfg := TestConfig()
	board, err := NewBoard(&cfg, remote, lanes, opts...)
	require.NoError(t, err)
	require.NoError(t, board.Start(context.Background()))
	t.Cleanup(func() { _ = board.Stop(context.Background()) })

	return board
}

func TestNewBoardValidation(t *testing.T) {
	t.Parallel()

	cfg := TestConfig()
	lanes := []types.LaneID{"alice"}

	_, err := NewBoard(nil, newFakeRemote(), lanes)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewBoard(&cfg, nil, lanes)
	require.ErrorIs(t, err, ErrRemoteServiceRequired)

	_, err = NewBoard(&cfg, newFakeRemote(), nil)
	require.ErrorIs(t, err, ErrNoLanes)

	bad := TestConfig()
	bad.DragThreshold = -1
	_, err = NewBoard(&bad, newFakeRemote(), lanes)
	require.Error(t, err)
}

func TestBoardStartLoadsCanonicalState(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice"},
		types.WorkItem{ID: "t2", Assignee: "bob"},
		types.WorkItem{ID: "t3"},
		types.WorkItem{ID: "t4", Assignee: "ghost"},
	)
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	p := board.Partition()
	require.Len(t, p["alice"], 1)
	require.Len(t, p["bob"], 1)
	// Unassigned and unknown-assignee items both land in the sentinel lane.
	require.Len(t, p[types.LaneUnassigned], 2)
	require.Equal(t, 4, p.Size())
}

func TestBoardStartTwiceFails(t *testing.T) {
	t.Parallel()

	board := startTestBoard(t, newFakeRemote(), []types.LaneID{"alice"})
	require.ErrorIs(t, board.Start(context.Background()), ErrAlreadyStarted)
}

func TestBoardStopWithoutStart(t *testing.T) {
	t.Parallel()

	cfg := TestConfig()
	board, err := NewBoard(&cfg, newFakeRemote(), []types.LaneID{"alice"})
	require.NoError(t, err)
	require.ErrorIs(t, board.Stop(context.Background()), ErrNotStarted)
}

func TestApplyConfirmedRoundTrip(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	result, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	require.NoError(t, err)
	require.Equal(t, types.OutcomeConfirmed, result.Outcome)

	p := board.Partition()
	require.Empty(t, p["alice"])
	require.Len(t, p["bob"], 1)
	require.Equal(t, types.LaneID("bob"), p["bob"][0].Assignee)
	require.False(t, board.InFlight("t1"))
}

func TestApplyRevertedRestoresMembership(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	remote.reassignErr = types.ErrRemoteUnavailable
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	result, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	require.ErrorIs(t, err, types.ErrRemoteUnavailable)
	require.Equal(t, types.OutcomeReverted, result.Outcome)

	// The item is back in its exact pre-apply lane and free for retry.
	p := board.Partition()
	require.Len(t, p["alice"], 1)
	require.Empty(t, p["bob"])
	require.False(t, board.InFlight("t1"))
}

func TestApplyOptimisticVisibilityBeforeResolution(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	remote.blockReassign = make(chan struct{})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	done := make(chan types.MutationResult, 1)
	go func() {
		result, _ := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
		done <- result
	}()

	// While the remote call is held open, the move is already visible.
	require.Eventually(t, func() bool {
		return len(board.Partition()["bob"]) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.True(t, board.InFlight("t1"))

	close(remote.blockReassign)
	result := <-done
	require.Equal(t, types.OutcomeConfirmed, result.Outcome)
}

func TestApplyNoOpIntent(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	result, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "alice"})
	require.NoError(t, err)
	require.Equal(t, types.OutcomeNoOp, result.Outcome)
	require.False(t, board.InFlight("t1"))
}

func TestApplyInvalidIntent(t *testing.T) {
	t.Parallel()

	board := startTestBoard(t, newFakeRemote(), []types.LaneID{"alice"})

	result, err := board.Apply(context.Background(), types.MutationIntent{Item: "", From: "a", To: "b"})
	require.ErrorIs(t, err, ErrInvalidIntent)
	require.Equal(t, types.OutcomeRejected, result.Outcome)
}

func TestApplyRejectsRacingIntent(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	remote.blockReassign = make(chan struct{})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob", "carol"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	}()

	require.Eventually(t, func() bool { return board.InFlight("t1") }, 2*time.Second, 5*time.Millisecond)

	// A second intent for the same item is rejected, not queued, and the
	// original optimistic state is untouched.
	result, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "bob", To: "carol"})
	require.ErrorIs(t, err, ErrMutationInFlight)
	require.Equal(t, types.OutcomeRejected, result.Outcome)
	require.Len(t, board.Partition()["bob"], 1)

	close(remote.blockReassign)
	<-done
}

func TestApplyResolutionHooksFire(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})

	applied := make(chan types.MutationIntent, 1)
	resolved := make(chan types.MutationResult, 1)
	h := &Hooks{
		OnMutationApplied: func(_ context.Context, intent types.MutationIntent) error {
			applied <- intent

			return nil
		},
		OnMutationResolved: func(_ context.Context, result types.MutationResult) error {
			resolved <- result

			return nil
		},
	}

	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"}, WithHooks(h))

	_, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	require.NoError(t, err)

	select {
	case intent := <-applied:
		require.Equal(t, types.ItemID("t1"), intent.Item)
	case <-time.After(2 * time.Second):
		t.Fatal("OnMutationApplied not called")
	}

	select {
	case result := <-resolved:
		require.Equal(t, types.OutcomeConfirmed, result.Outcome)
		require.Positive(t, result.Elapsed)
	case <-time.After(2 * time.Second):
		t.Fatal("OnMutationResolved not called")
	}
}

func TestApplyBulkSetStatus(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice", Status: types.StatusOpen},
		types.WorkItem{ID: "t2", Assignee: "bob", Status: types.StatusOpen},
	)
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	result, err := board.ApplyBulk(context.Background(), []types.ItemID{"t1", "t2"},
		types.BulkAction{Name: types.BulkSetStatus, Status: types.StatusDone})
	require.NoError(t, err)
	require.ElementsMatch(t, []types.ItemID{"t1", "t2"}, result.Affected)

	for _, bucket := range board.Partition() {
		for _, item := range bucket {
			require.Equal(t, types.StatusDone, item.Status)
		}
	}
}

func TestApplyBulkAccessDeniedMutatesNothing(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice"},
		types.WorkItem{ID: "t2", Assignee: "bob"},
	)
	remote.bulkErr = types.ErrAccessDenied
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	before := board.Partition()

	result, err := board.ApplyBulk(context.Background(), []types.ItemID{"t1", "t2"},
		types.BulkAction{Name: types.BulkReassign, Assignee: "alice"})
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Empty(t, result.Affected)

	after := board.Partition()
	require.Equal(t, before, after)
}

func TestApplyBulkDelete(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice"},
		types.WorkItem{ID: "t2", Assignee: "alice"},
	)
	board := startTestBoard(t, remote, []types.LaneID{"alice"})

	result, err := board.ApplyBulk(context.Background(), []types.ItemID{"t1"},
		types.BulkAction{Name: types.BulkDelete})
	require.NoError(t, err)
	require.Equal(t, []types.ItemID{"t1"}, result.Affected)

	p := board.Partition()
	require.Equal(t, 1, p.Size())
	require.Equal(t, types.ItemID("t2"), p["alice"][0].ID)
}

func TestApplyBulkInvalidPayload(t *testing.T) {
	t.Parallel()

	board := startTestBoard(t, newFakeRemote(), []types.LaneID{"alice"})

	_, err := board.ApplyBulk(context.Background(), []types.ItemID{"t1"},
		types.BulkAction{Name: types.BulkReassign})
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestApplyBulkRejectsInFlightTarget(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice"},
		types.WorkItem{ID: "t2", Assignee: "alice"},
	)
	remote.blockReassign = make(chan struct{})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	}()
	require.Eventually(t, func() bool { return board.InFlight("t1") }, 2*time.Second, 5*time.Millisecond)

	_, err := board.ApplyBulk(context.Background(), []types.ItemID{"t1", "t2"},
		types.BulkAction{Name: types.BulkSetStatus, Status: types.StatusDone})
	require.ErrorIs(t, err, ErrMutationInFlight)

	close(remote.blockReassign)
	<-done
}

func TestInvalidateTriggersRefetch(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	// Another participant reassigned the item remotely.
	remote.setAssignee("t1", "bob")
	board.Invalidate()

	require.Eventually(t, func() bool {
		return len(board.Partition()["bob"]) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestInvalidateCoalescesBursts(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice"})

	base := remote.fetches.Load()
	for i := 0; i < 10; i++ {
		board.Invalidate()
	}

	require.Eventually(t, func() bool {
		return remote.fetches.Load() > base
	}, 2*time.Second, 5*time.Millisecond)

	// A burst of signals costs far fewer fetches than signals; allow the
	// loop one trailing fetch beyond the coalesced one.
	time.Sleep(100 * time.Millisecond)
	require.LessOrEqual(t, remote.fetches.Load()-base, int32(2))
}

func TestRefetchPreservesInFlightOverride(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	remote.blockReassign = make(chan struct{})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob", "carol"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	}()
	require.Eventually(t, func() bool {
		return len(board.Partition()["bob"]) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// A refetch lands mid-flight carrying a conflicting canonical value.
	remote.setAssignee("t1", "carol")
	board.Invalidate()

	require.Eventually(t, func() bool {
		return remote.fetches.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	// The optimistic assignment still wins while the mutation is in flight.
	require.Len(t, board.Partition()["bob"], 1)

	close(remote.blockReassign)
	<-done
}

func TestRefetchFailureReportsError(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})

	errs := make(chan error, 1)
	h := &Hooks{
		OnError: func(_ context.Context, err error) error {
			select {
			case errs <- err:
			default:
			}

			return nil
		},
	}
	board := startTestBoard(t, remote, []types.LaneID{"alice"}, WithHooks(h))

	remote.mu.Lock()
	remote.fetchErr = errors.New("backing store down")
	remote.mu.Unlock()

	board.Invalidate()

	select {
	case err := <-errs:
		require.ErrorContains(t, err, "backing store down")
	case <-time.After(2 * time.Second):
		t.Fatal("OnError not called for failed refetch")
	}

	// The last good snapshot survives a failed refetch.
	require.Len(t, board.Partition()["alice"], 1)
}

func TestSubscribePartitionDeliversSnapshots(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	ch, unsubscribe := board.SubscribePartition()
	defer unsubscribe()

	// Initial snapshot arrives immediately.
	select {
	case p := <-ch:
		require.Len(t, p["alice"], 1)
	case <-time.After(2 * time.Second):
		t.Fatal("initial snapshot not delivered")
	}

	_, err := board.Apply(context.Background(), types.MutationIntent{Item: "t1", From: "alice", To: "bob"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		select {
		case p := <-ch:
			return len(p["bob"]) == 1
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
}

func TestUpdateLanes(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "alice"},
		types.WorkItem{ID: "t2", Assignee: "bob"},
	)
	board := startTestBoard(t, remote, []types.LaneID{"alice", "bob"})

	// Bob leaves the team; his items degrade to unassigned.
	require.NoError(t, board.UpdateLanes([]types.LaneID{"alice"}))

	p := board.Partition()
	require.Len(t, p["alice"], 1)
	require.NotContains(t, p, types.LaneID("bob"))
	require.Len(t, p[types.LaneUnassigned], 1)

	require.ErrorIs(t, board.UpdateLanes(nil), ErrNoLanes)
}

func TestSubscribePartitionUnsubscribeUnderLoad(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(types.WorkItem{ID: "t1", Assignee: "alice"})
	board := startTestBoard(t, remote, []types.LaneID{"alice"})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lanes := [][]types.LaneID{{"alice"}, {"alice", "bob"}}
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				_ = board.UpdateLanes(lanes[i%2])
			}
		}
	}()

	// Unsubscribing while recomputes fan out must never panic on a send
	// to the just-closed channel.
	for i := 0; i < 200; i++ {
		ch, unsubscribe := board.SubscribePartition()
		<-ch // initial snapshot
		unsubscribe()
	}

	close(done)
	wg.Wait()
}
