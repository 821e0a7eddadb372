package types

// PartitionMap is the derived mapping from lane identity to its member
// items.
//
// A PartitionMap is always a complete snapshot: every known lane appears as
// a key (including LaneUnassigned, possibly with an empty bucket), and every
// input item appears in exactly one bucket. Bucket order preserves the
// relative order of the input item list.
type PartitionMap map[LaneID][]WorkItem

// Items returns the bucket for the given lane.
//
// Returns:
//   - []WorkItem: The lane's members in stable order (nil for unknown lanes)
func (p PartitionMap) Items(lane LaneID) []WorkItem {
	return p[lane]
}

// Size returns the total number of items across all buckets.
func (p PartitionMap) Size() int {
	n := 0
	for _, items := range p {
		n += len(items)
	}

	return n
}

// LaneOf returns the lane containing the given item, if any.
//
// This is a linear scan intended for tests and diagnostics, not hot paths.
//
// Returns:
//   - LaneID: The containing lane ("" if the item is absent)
//   - bool: true if the item was found
func (p PartitionMap) LaneOf(id ItemID) (LaneID, bool) {
	for lane, items := range p {
		for _, item := range items {
			if item.ID == id {
				return lane, true
			}
		}
	}

	return "", false
}

// Clone returns a deep copy of the partition map.
//
// Buckets are copied so callers can hold the result across recomputes
// without racing the board's internal state.
func (p PartitionMap) Clone() PartitionMap {
	out := make(PartitionMap, len(p))
	for lane, items := range p {
		bucket := make([]WorkItem, len(items))
		copy(bucket, items)
		out[lane] = bucket
	}

	return out
}
