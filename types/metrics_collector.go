package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	MutationMetrics
	PartitionMetrics
	GestureMetrics
	PresenceMetrics
}

// MutationMetrics defines metrics for the optimistic mutation path.
type MutationMetrics interface {
	// RecordMutationResolved records the resolution of one mutation cycle.
	//
	// Parameters:
	//   - outcome: Resolution outcome ("Confirmed", "Reverted", "Rejected", "NoOp")
	//   - duration: Time from optimistic apply to resolution, in seconds
	RecordMutationResolved(outcome string, duration float64)

	// RecordInFlight sets the current number of outstanding mutations (gauge).
	RecordInFlight(count int)

	// RecordBulkAction records a bulk action dispatch.
	//
	// Parameters:
	//   - action: Action name ("reassign", "set_status", "set_priority", "delete")
	//   - affected: Number of items actually mutated
	//   - success: true if the remote call succeeded
	RecordBulkAction(action string, affected int, success bool)
}

// PartitionMetrics defines metrics for partition recomputes and refetches.
type PartitionMetrics interface {
	// RecordPartitionCompute records one partition recompute.
	//
	// Parameters:
	//   - items: Number of items partitioned
	//   - duration: Compute time in seconds
	RecordPartitionCompute(items int, duration float64)

	// RecordRefetch records a canonical state fetch triggered by an
	// invalidation signal or the initial load.
	RecordRefetch(success bool)

	// RecordPartitionEventDropped records a partition notification dropped
	// due to a slow subscriber.
	RecordPartitionEventDropped()
}

// GestureMetrics defines metrics for the drag gesture state machine.
type GestureMetrics interface {
	// RecordDragResolved records a completed drag lifecycle.
	//
	// Parameters:
	//   - outcome: Terminal transition ("dropped", "noop", "cancelled")
	RecordDragResolved(outcome string)
}

// PresenceMetrics defines metrics for presence heartbeats and rosters.
type PresenceMetrics interface {
	// RecordHeartbeat records a heartbeat publish attempt for a channel.
	RecordHeartbeat(channel string, success bool)

	// RecordPresent sets the current number of live participants on a
	// channel (gauge).
	RecordPresent(channel string, count int)
}
