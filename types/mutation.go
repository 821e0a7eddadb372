package types

import "time"

// MutationIntent is a single reassignment request: move one item from one
// lane to another.
//
// Intents are produced by a completed drag gesture and consumed exactly once
// by the board's optimistic mutation path. They are never persisted; an
// intent lives only for the duration of one optimistic-apply cycle.
type MutationIntent struct {
	// Item is the work item being reassigned.
	Item ItemID `json:"item"`

	// From is the lane the item is leaving.
	From LaneID `json:"from"`

	// To is the lane the item is moving to. LaneUnassigned clears the
	// assignee.
	To LaneID `json:"to"`
}

// IsNoOp reports whether the intent would not change lane membership.
//
// No-op intents are discarded without side effects and without marking the
// item in flight.
func (m MutationIntent) IsNoOp() bool {
	return m.From == m.To
}

// Validate checks structural validity of the intent.
//
// Returns:
//   - error: ErrInvalidIntent if the item or target lane is missing, nil otherwise
func (m MutationIntent) Validate() error {
	if m.Item == "" {
		return ErrInvalidIntent
	}
	if m.To == "" || m.From == "" {
		return ErrInvalidIntent
	}

	return nil
}

// MutationOutcome describes how a mutation cycle resolved.
type MutationOutcome int

const (
	// OutcomeNoOp means the intent was discarded without side effects.
	OutcomeNoOp MutationOutcome = iota

	// OutcomeRejected means the intent was refused before any local change
	// (invalid intent, or the item already has a mutation in flight).
	OutcomeRejected

	// OutcomeConfirmed means the remote endpoint accepted the mutation and
	// the optimistic change became canonical.
	OutcomeConfirmed

	// OutcomeReverted means the remote endpoint failed or rejected the
	// mutation and the optimistic change was rolled back.
	OutcomeReverted
)

// String returns the string representation of the outcome.
func (o MutationOutcome) String() string {
	switch o {
	case OutcomeNoOp:
		return "NoOp"
	case OutcomeRejected:
		return "Rejected"
	case OutcomeConfirmed:
		return "Confirmed"
	case OutcomeReverted:
		return "Reverted"
	default:
		return "Unknown"
	}
}

// MutationResult reports the resolution of one mutation cycle.
type MutationResult struct {
	// Intent is the intent this result resolves.
	Intent MutationIntent

	// Outcome describes how the cycle ended.
	Outcome MutationOutcome

	// Err carries the failure reason for rejected or reverted outcomes.
	Err error

	// Elapsed is the time from optimistic apply to remote resolution.
	// Zero for no-op and rejected outcomes.
	Elapsed time.Duration
}
