package taskflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krockxz/taskflow/gesture"
	"github.com/krockxz/taskflow/types"
)

func itemIDs(items []types.WorkItem) []types.ItemID {
	ids := make([]types.ItemID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	return ids
}

// TestDragReassignEndToEnd walks a full board interaction: the gesture
// tracker turns a pointer drag into a mutation intent, the board applies it
// against the remote service, and the partition reflects the confirmed move.
func TestDragReassignEndToEnd(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote(
		types.WorkItem{ID: "t1", Assignee: "user-a"},
		types.WorkItem{ID: "t2"},
		types.WorkItem{ID: "t3", Assignee: "user-b"},
	)
	board := startTestBoard(t, remote, []types.LaneID{"user-a", "user-b"})

	p := board.Partition()
	require.Equal(t, []types.ItemID{"t1"}, itemIDs(p["user-a"]))
	require.Equal(t, []types.ItemID{"t3"}, itemIDs(p["user-b"]))
	require.Equal(t, []types.ItemID{"t2"}, itemIDs(p[types.LaneUnassigned]))

	var (
		result   types.MutationResult
		applyErr error
	)
	tracker := gesture.New(TestConfig().DragThreshold, func(intent types.MutationIntent) {
		result, applyErr = board.Apply(context.Background(), intent)
	})

	require.NoError(t, tracker.PointerDown("t2", types.LaneUnassigned, gesture.Point{X: 10, Y: 10}))
	require.Equal(t, types.DragActive, tracker.PointerMove(gesture.Point{X: 40, Y: 10}))

	intent, produced := tracker.PointerUp("user-a")
	require.True(t, produced)
	require.Equal(t, types.MutationIntent{Item: "t2", From: types.LaneUnassigned, To: "user-a"}, intent)

	require.NoError(t, applyErr)
	require.Equal(t, types.OutcomeConfirmed, result.Outcome)

	p = board.Partition()
	require.Equal(t, []types.ItemID{"t1", "t2"}, itemIDs(p["user-a"]))
	require.Equal(t, []types.ItemID{"t3"}, itemIDs(p["user-b"]))
	require.Empty(t, p[types.LaneUnassigned])
}
