package types

// BulkActionName discriminates the bulk action payload variants.
type BulkActionName string

// Supported bulk actions.
const (
	BulkReassign    BulkActionName = "reassign"
	BulkSetStatus   BulkActionName = "set_status"
	BulkSetPriority BulkActionName = "set_priority"
	BulkDelete      BulkActionName = "delete"
)

// BulkAction is a tagged union of bulk action payloads, keyed by Name.
//
// Only the payload field matching Name is meaningful; Validate enforces
// this before dispatch so malformed payloads never reach the remote
// endpoint.
type BulkAction struct {
	// Name selects the action variant.
	Name BulkActionName `json:"name"`

	// Assignee is the target lane for BulkReassign. LaneUnassigned clears
	// the assignee.
	Assignee LaneID `json:"assignee,omitempty"`

	// Status is the target status for BulkSetStatus.
	Status Status `json:"status,omitempty"`

	// Priority is the target priority for BulkSetPriority.
	Priority Priority `json:"priority,omitempty"`
}

// Validate checks that the payload matches the action variant.
//
// Returns:
//   - error: ErrInvalidPayload if the payload is malformed for the named
//     action, or the action name is unknown
func (a BulkAction) Validate() error {
	switch a.Name {
	case BulkReassign:
		if a.Assignee == "" {
			return ErrInvalidPayload
		}
	case BulkSetStatus:
		switch a.Status {
		case StatusOpen, StatusInProgress, StatusBlocked, StatusDone:
		default:
			return ErrInvalidPayload
		}
	case BulkSetPriority:
		switch a.Priority {
		case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		default:
			return ErrInvalidPayload
		}
	case BulkDelete:
		// No payload.
	default:
		return ErrInvalidPayload
	}

	return nil
}

// IsDestructive reports whether the action removes items from the backing
// store. Destructive actions skip the audit trail: deleted entities cannot
// hold a foreign-keyed audit record.
func (a BulkAction) IsDestructive() bool {
	return a.Name == BulkDelete
}

// BulkResult reports the outcome of a bulk action.
//
// Authorization is all-or-nothing: on an access failure Affected is always
// empty. After authorization passes, the mutation phase may apply partially
// on transient per-item failures, so Affected lists the items that were
// actually mutated rather than assuming all targets were.
type BulkResult struct {
	// Affected lists the items the remote endpoint actually mutated.
	Affected []ItemID `json:"affected"`
}
