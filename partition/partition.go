package partition

import "github.com/krockxz/taskflow/types"

// Compute partitions items into lane buckets in a single pass.
//
// Lane resolution per item, in order:
//  1. An override in overrides, keyed by item ID (the board's optimistic
//     assignment map). A present entry always wins, even when it points at
//     LaneUnassigned.
//  2. The item's own assignee reference.
//  3. LaneUnassigned, when the resolved lane is not among the known lanes.
//     Unknown lane references degrade into the unassigned bucket instead of
//     being dropped, so a stale assignee never causes silent data loss.
//
// The unassigned sentinel is always present in the output even when empty,
// and it does not need to appear in lanes. Items keep their relative input
// order within each bucket, so in-lane ordering does not jitter across
// recomputes.
//
// Complexity is O(items + lanes); the item list is never re-scanned per lane.
//
// Parameters:
//   - items: Flat work item list in canonical order
//   - lanes: Known lane identities (real assignees; the sentinel is implied)
//   - overrides: Optimistic assignment overrides by item ID (may be nil)
//
// Returns:
//   - types.PartitionMap: Complete bucket snapshot, one key per known lane
func Compute(items []types.WorkItem, lanes []types.LaneID, overrides map[types.ItemID]types.LaneID) types.PartitionMap {
	known := make(map[types.LaneID]struct{}, len(lanes)+1)
	out := make(types.PartitionMap, len(lanes)+1)

	out[types.LaneUnassigned] = []types.WorkItem{}
	known[types.LaneUnassigned] = struct{}{}
	for _, lane := range lanes {
		if lane.IsUnassigned() {
			continue
		}
		known[lane] = struct{}{}
		out[lane] = []types.WorkItem{}
	}

	for _, item := range items {
		lane := resolve(item, overrides)
		if _, ok := known[lane]; !ok {
			lane = types.LaneUnassigned
		}
		out[lane] = append(out[lane], item)
	}

	return out
}

// resolve determines the lane for a single item: override first, then the
// item's own assignee, normalizing empty to the unassigned sentinel.
func resolve(item types.WorkItem, overrides map[types.ItemID]types.LaneID) types.LaneID {
	if lane, ok := overrides[item.ID]; ok {
		if lane.IsUnassigned() {
			return types.LaneUnassigned
		}

		return lane
	}

	return item.Lane()
}
