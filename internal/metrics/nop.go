package metrics

import "github.com/krockxz/taskflow/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	board := taskflow.NewBoard(cfg, remote, lanes, taskflow.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// MutationMetrics implementation

// RecordMutationResolved discards the mutation resolution metric.
func (n *NopMetrics) RecordMutationResolved(_ /* outcome */ string, _ /* duration */ float64) {
	// No-op
}

// RecordInFlight discards the in-flight gauge.
func (n *NopMetrics) RecordInFlight(_ /* count */ int) {
	// No-op
}

// RecordBulkAction discards the bulk action metric.
func (n *NopMetrics) RecordBulkAction(_ /* action */ string, _ /* affected */ int, _ /* success */ bool) {
	// No-op
}

// PartitionMetrics implementation

// RecordPartitionCompute discards the partition compute metric.
func (n *NopMetrics) RecordPartitionCompute(_ /* items */ int, _ /* duration */ float64) {
	// No-op
}

// RecordRefetch discards the refetch metric.
func (n *NopMetrics) RecordRefetch(_ /* success */ bool) {
	// No-op
}

// RecordPartitionEventDropped discards the dropped notification counter.
func (n *NopMetrics) RecordPartitionEventDropped() {
	// No-op
}

// GestureMetrics implementation

// RecordDragResolved discards the drag outcome metric.
func (n *NopMetrics) RecordDragResolved(_ /* outcome */ string) {
	// No-op
}

// PresenceMetrics implementation

// RecordHeartbeat discards the heartbeat metric.
func (n *NopMetrics) RecordHeartbeat(_ /* channel */ string, _ /* success */ bool) {
	// No-op
}

// RecordPresent discards the present-count gauge.
func (n *NopMetrics) RecordPresent(_ /* channel */ string, _ /* count */ int) {
	// No-op
}
