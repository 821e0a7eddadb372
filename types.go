package taskflow

import "github.com/krockxz/taskflow/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `taskflow`
// package, while still providing a convenient `taskflow.WorkItem`,
// `taskflow.Logger`, etc. for users.
type (
	ItemID          = types.ItemID
	LaneID          = types.LaneID
	Status          = types.Status
	Priority        = types.Priority
	WorkItem        = types.WorkItem
	PartitionMap    = types.PartitionMap
	MutationIntent  = types.MutationIntent
	MutationOutcome = types.MutationOutcome
	MutationResult  = types.MutationResult
	BulkAction      = types.BulkAction
	BulkActionName  = types.BulkActionName
	BulkResult      = types.BulkResult
	ParticipantID   = types.ParticipantID
	ChannelID       = types.ChannelID
	Heartbeat       = types.Heartbeat
	DragState       = types.DragState
)

// Re-export interfaces from the internal types package for convenience.
type (
	RemoteService     = types.RemoteService
	PresenceTransport = types.PresenceTransport
	MetricsCollector  = types.MetricsCollector
	Logger            = types.Logger
	Hooks             = types.Hooks
)

// LaneUnassigned re-exports the unassigned lane sentinel.
const LaneUnassigned = types.LaneUnassigned

// Re-export mutation outcome constants.
const (
	OutcomeNoOp      = types.OutcomeNoOp
	OutcomeRejected  = types.OutcomeRejected
	OutcomeConfirmed = types.OutcomeConfirmed
	OutcomeReverted  = types.OutcomeReverted
)

// Re-export bulk action name constants.
const (
	BulkReassign    = types.BulkReassign
	BulkSetStatus   = types.BulkSetStatus
	BulkSetPriority = types.BulkSetPriority
	BulkDelete      = types.BulkDelete
)

// Re-export drag state constants.
const (
	DragIdle      = types.DragIdle
	DragPending   = types.DragPending
	DragActive    = types.DragActive
	DragDropped   = types.DragDropped
	DragCancelled = types.DragCancelled
)
