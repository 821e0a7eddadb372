package gesture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krockxz/taskflow/types"
)

func TestClickBelowThresholdProducesNoIntent(t *testing.T) {
	t.Parallel()

	var produced []types.MutationIntent
	tr := New(5, func(i types.MutationIntent) { produced = append(produced, i) })

	require.NoError(t, tr.PointerDown("T1", "laneA", Point{X: 10, Y: 10}))
	require.Equal(t, types.DragPending, tr.PointerMove(Point{X: 12, Y: 11}))

	_, ok := tr.PointerUp("laneB")
	require.False(t, ok)
	require.Empty(t, produced)
	require.Equal(t, types.DragIdle, tr.State())
}

func TestDragAcrossThresholdProducesOneIntent(t *testing.T) {
	t.Parallel()

	var produced []types.MutationIntent
	tr := New(5, func(i types.MutationIntent) { produced = append(produced, i) })

	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	require.Equal(t, types.DragActive, tr.PointerMove(Point{X: 20, Y: 0}))

	intent, ok := tr.PointerUp("laneB")
	require.True(t, ok)
	require.Equal(t, types.MutationIntent{Item: "T1", From: "laneA", To: "laneB"}, intent)
	require.Equal(t, produced, []types.MutationIntent{intent})
	require.Equal(t, types.DragIdle, tr.State())
}

func TestDropOnCurrentLaneIsNoOp(t *testing.T) {
	t.Parallel()

	tr := New(5, nil)
	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	tr.PointerMove(Point{X: 30, Y: 30})

	_, ok := tr.PointerUp("laneA")
	require.False(t, ok)
	require.Equal(t, types.DragIdle, tr.State())
}

func TestDropOverNoTargetIsNoOp(t *testing.T) {
	t.Parallel()

	tr := New(5, nil)
	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	tr.PointerMove(Point{X: 30, Y: 30})

	_, ok := tr.PointerUp("")
	require.False(t, ok)
	require.Equal(t, types.DragIdle, tr.State())
}

func TestCancelDiscardsPreviewWithoutIntent(t *testing.T) {
	t.Parallel()

	var produced int
	tr := New(5, func(types.MutationIntent) { produced++ })

	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	tr.PointerMove(Point{X: 50, Y: 0})

	_, _, active := tr.Preview()
	require.True(t, active)

	require.NoError(t, tr.Cancel())
	require.Equal(t, types.DragIdle, tr.State())
	require.Zero(t, produced)

	_, _, active = tr.Preview()
	require.False(t, active)
}

func TestCancelWithoutDragFails(t *testing.T) {
	t.Parallel()

	tr := New(5, nil)
	require.ErrorIs(t, tr.Cancel(), types.ErrNoActiveDrag)
}

func TestSecondPressWhileDraggingIsRejected(t *testing.T) {
	t.Parallel()

	tr := New(5, nil)
	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	tr.PointerMove(Point{X: 50, Y: 0})

	err := tr.PointerDown("T2", "laneB", Point{})
	require.ErrorIs(t, err, types.ErrDragActive)

	// The original drag is still intact.
	item, _, active := tr.Preview()
	require.True(t, active)
	require.Equal(t, types.ItemID("T1"), item)
}

func TestPreviewFollowsPointer(t *testing.T) {
	t.Parallel()

	tr := New(5, nil)
	require.NoError(t, tr.PointerDown("T1", "laneA", Point{}))
	tr.PointerMove(Point{X: 40, Y: 25})

	_, pos, active := tr.Preview()
	require.True(t, active)
	require.Equal(t, Point{X: 40, Y: 25}, pos)
}

func TestPointerDownValidation(t *testing.T) {
	t.Parallel()

	tr := New(0, nil)
	require.ErrorIs(t, tr.PointerDown("", "laneA", Point{}), types.ErrInvalidIntent)
	require.ErrorIs(t, tr.PointerDown("T1", "", Point{}), types.ErrInvalidIntent)
}
