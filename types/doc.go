// Package types provides core type definitions and interfaces for the taskflow library.
//
// This package contains shared types that are used across multiple packages in the
// taskflow library. By keeping these types in a separate package, we avoid import cycles
// between the main taskflow package and its internal implementations.
//
// Key types:
//   - WorkItem: Read-mostly projection of a backing-store work item
//   - LaneID: Lane identity (an assignee, or the unassigned sentinel)
//   - MutationIntent: A single reassignment request produced by a completed drag
//   - PartitionMap: Derived lane membership for a set of work items
//   - PresenceRecord: Heartbeat-derived presence of a participant on a channel
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
