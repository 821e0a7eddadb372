package types

// DragState represents the drag gesture lifecycle state.
//
// States follow a fixed progression:
//
//	DragIdle → DragActive → DragDropped / DragCancelled → DragIdle
//
// Dropped and Cancelled are transient terminal states: the tracker reports
// them for the completing transition and immediately returns to Idle.
type DragState int

const (
	// DragIdle means no drag is in progress.
	DragIdle DragState = iota

	// DragPending means the pointer is down on an item but movement has
	// not yet exceeded the drag threshold. A release in this state is a
	// plain click, not a drag.
	DragPending

	// DragActive means the pointer moved past the threshold and a drag is
	// in progress. A transient preview follows the pointer; canonical
	// state is untouched until the drop.
	DragActive

	// DragDropped means the drag completed over a target lane.
	DragDropped

	// DragCancelled means the drag was abandoned (escape, focus loss).
	DragCancelled
)

// String returns the string representation of the state.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "Idle"
	case DragPending:
		return "Pending"
	case DragActive:
		return "Dragging"
	case DragDropped:
		return "Dropped"
	case DragCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
