// Package taskflow provides a Go library for optimistic work item
// reassignment and presence synchronization on timezone-lane kanban boards.
//
// Taskflow keeps a board responsive while the backing store stays
// authoritative: reassignments become visible immediately, then confirm or
// roll back when the remote round trip resolves. Items are partitioned into
// assignee lanes in a single stable pass, collaborator liveness is derived
// purely from heartbeats, and realtime invalidation signals trigger
// coalesced canonical refetches.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import (
//	    "github.com/krockxz/taskflow"
//	    "github.com/krockxz/taskflow/transport"
//	)
//
//	cfg := taskflow.DefaultConfig()
//	remote, _ := transport.NewHTTPRemote("https://api.example.com/v1", nil)
//
//	board, err := taskflow.NewBoard(&cfg, remote, []taskflow.LaneID{"alice", "bob"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := board.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer board.Stop(context.Background())
//
//	result, err := board.Apply(ctx, taskflow.MutationIntent{
//	    Item: "task-1", From: taskflow.LaneUnassigned, To: "bob",
//	})
//
// # Key Features
//
//   - Optimistic Mutations: Reassignments apply locally before the remote
//     round trip, with exact rollback on failure
//   - In-Flight Guard: At most one outstanding mutation per item; racing
//     intents are rejected, never queued
//   - Stable Partitioning: Single-pass lane bucketing preserving input
//     order, with unknown assignees degrading to the unassigned lane
//   - Drag Gestures: A validated state machine turns pointer events into
//     at most one mutation intent per drag
//   - Presence: Heartbeat-derived rosters with implicit expiry; no leave
//     messages, no stored presence state
//   - Invalidation Bridge: At-least-once refetch signals coalesce into
//     debounced canonical fetches
//
// # Architecture
//
// The Board owns canonical items plus an override map holding exactly the
// optimistic assignments of in-flight mutations. Every visible change
// recomputes the partition snapshot:
//
//	override > canonical assignee > unassigned
//
// Refetches replace items wholesale and never touch overrides, so an
// in-flight optimistic change survives concurrent remote updates until it
// resolves.
//
// # Advanced Usage
//
// Hooks and metrics:
//
//	hooks := &taskflow.Hooks{
//	    OnMutationResolved: func(ctx context.Context, result taskflow.MutationResult) error {
//	        if result.Outcome == taskflow.OutcomeReverted {
//	            notifyUser(result.Err)
//	        }
//	        return nil
//	    },
//	}
//
//	board, err := taskflow.NewBoard(&cfg, remote, lanes,
//	    taskflow.WithHooks(hooks),
//	    taskflow.WithMetrics(taskflow.NewPrometheusMetrics(prometheus.DefaultRegisterer, "taskflow")),
//	    taskflow.WithAuditTrail(natsConn, "TASKFLOW_AUDIT", "taskflow.audit"),
//	)
//
// See the examples/ directory for complete working examples.
package taskflow
