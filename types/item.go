package types

import "time"

// ItemID uniquely identifies a work item. The value is opaque to this
// library; it is minted by the backing store.
type ItemID string

// LaneID identifies a lane. A lane is either a real assignee (user) or the
// distinguished unassigned sentinel. Lanes are derived groupings, never
// stored entities.
type LaneID string

// LaneUnassigned is the sentinel lane for items without an assignee.
//
// It is always present in a computed partition, even when empty, and it is
// the fallback bucket for items whose assignee is not among the known lanes.
const LaneUnassigned LaneID = "__unassigned__"

// IsUnassigned reports whether the lane is the unassigned sentinel or empty.
func (l LaneID) IsUnassigned() bool {
	return l == LaneUnassigned || l == ""
}

// Status is the workflow status of a work item.
type Status string

// Status values mirrored from the backing store.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// Priority is the relative priority of a work item.
type Priority string

// Priority values mirrored from the backing store.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// WorkItem is a read-mostly projection of a work item owned by the backing
// store.
//
// The only field this library is allowed to mutate optimistically is
// Assignee; everything else is overwritten wholesale on each canonical
// fetch. An empty Assignee means the item is unassigned.
type WorkItem struct {
	// ID uniquely identifies the item in the backing store.
	ID ItemID `json:"id"`

	// Title is display metadata, carried through untouched.
	Title string `json:"title"`

	// Assignee is the lane owner the item currently belongs to.
	// Empty means unassigned.
	Assignee LaneID `json:"assignee,omitempty"`

	// Status is the item's workflow status.
	Status Status `json:"status"`

	// Priority is the item's priority.
	Priority Priority `json:"priority"`

	// CreatedAt is when the item was created in the backing store.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the item was last modified in the backing store.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lane resolves the item's lane from its own assignee reference.
//
// Returns:
//   - LaneID: The item's assignee, or LaneUnassigned when empty
func (w WorkItem) Lane() LaneID {
	if w.Assignee.IsUnassigned() {
		return LaneUnassigned
	}

	return w.Assignee
}
