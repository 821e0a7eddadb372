package partition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krockxz/taskflow/types"
)

func item(id string, assignee types.LaneID) types.WorkItem {
	return types.WorkItem{ID: types.ItemID(id), Assignee: assignee}
}

func TestComputeBasicScenario(t *testing.T) {
	t.Parallel()

	// lanes = [UserA, UserB]; items = [T1→UserA, T2→nil, T3→UserB]
	items := []types.WorkItem{
		item("T1", "userA"),
		item("T2", ""),
		item("T3", "userB"),
	}
	lanes := []types.LaneID{"userA", "userB"}

	got := Compute(items, lanes, nil)

	require.Len(t, got, 3)
	require.Equal(t, []types.WorkItem{items[0]}, got.Items("userA"))
	require.Equal(t, []types.WorkItem{items[2]}, got.Items("userB"))
	require.Equal(t, []types.WorkItem{items[1]}, got.Items(types.LaneUnassigned))
}

func TestComputeNoLossNoDuplication(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{
		item("a", "u1"),
		item("b", ""),
		item("c", "u2"),
		item("d", "u1"),
		item("e", "ghost"), // unknown lane
	}
	lanes := []types.LaneID{"u1", "u2"}

	got := Compute(items, lanes, nil)

	// Union of buckets has the same size as the input set.
	require.Equal(t, len(items), got.Size())

	// Every item appears in exactly one bucket.
	seen := make(map[types.ItemID]int)
	for _, bucket := range got {
		for _, it := range bucket {
			seen[it.ID]++
		}
	}
	for _, it := range items {
		require.Equal(t, 1, seen[it.ID], "item %s", it.ID)
	}
}

func TestComputeUnknownLaneDegradesToUnassigned(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{item("x", "departed-user")}
	got := Compute(items, []types.LaneID{"u1"}, nil)

	lane, ok := got.LaneOf("x")
	require.True(t, ok)
	require.Equal(t, types.LaneUnassigned, lane)
}

func TestComputeOverridesWin(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{
		item("a", "u1"),
		item("b", "u2"),
	}
	lanes := []types.LaneID{"u1", "u2"}
	overrides := map[types.ItemID]types.LaneID{
		"a": "u2",
		"b": types.LaneUnassigned, // explicit unassign override
	}

	got := Compute(items, lanes, overrides)

	require.Empty(t, got.Items("u1"))
	require.Equal(t, []types.WorkItem{items[0]}, got.Items("u2"))
	require.Equal(t, []types.WorkItem{items[1]}, got.Items(types.LaneUnassigned))
}

func TestComputeStableOrder(t *testing.T) {
	t.Parallel()

	items := []types.WorkItem{
		item("1", "u1"),
		item("2", "u1"),
		item("3", "u1"),
		item("4", ""),
		item("5", "u1"),
	}
	lanes := []types.LaneID{"u1"}

	first := Compute(items, lanes, nil)
	second := Compute(items, lanes, nil)

	// Idempotent: identical inputs yield identical buckets.
	require.Equal(t, first, second)

	// Relative input order is preserved within the bucket.
	ids := make([]types.ItemID, 0, 4)
	for _, it := range first.Items("u1") {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []types.ItemID{"1", "2", "3", "5"}, ids)
}

func TestComputeEmptyInputs(t *testing.T) {
	t.Parallel()

	got := Compute(nil, nil, nil)

	// The unassigned sentinel is always present, even for empty input.
	require.Len(t, got, 1)
	require.Empty(t, got.Items(types.LaneUnassigned))
	require.NotNil(t, got.Items(types.LaneUnassigned))
}

func TestComputeSentinelInLaneListIsNotDuplicated(t *testing.T) {
	t.Parallel()

	got := Compute(nil, []types.LaneID{types.LaneUnassigned, "u1"}, nil)
	require.Len(t, got, 2)
}
