package metrics

import (
	"sync"

	"github.com/krockxz/taskflow/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric families are registered lazily on first use so construction never
// panics on a registry that already holds collectors from a previous
// instance in the same process.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	mutationResolved *prometheus.CounterVec
	mutationLatency  *prometheus.HistogramVec
	inFlightGauge    prometheus.Gauge
	bulkActions      *prometheus.CounterVec
	bulkAffected     prometheus.Counter

	partitionLatency prometheus.Histogram
	partitionItems   prometheus.Gauge
	refetches        *prometheus.CounterVec
	droppedEvents    prometheus.Counter

	dragOutcomes *prometheus.CounterVec

	heartbeats   *prometheus.CounterVec
	presentGauge *prometheus.GaugeVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "taskflow" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "taskflow"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.mutationResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mutation",
			Name:      "resolved_total",
			Help:      "Total mutation cycle resolutions by outcome (Confirmed,Reverted,Rejected,NoOp).",
		}, []string{"outcome"})

		p.mutationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "mutation",
			Name:      "roundtrip_seconds",
			Help:      "Time from optimistic apply to remote resolution in seconds by outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 1.6, 10), // 10ms .. ~1.6s
		}, []string{"outcome"})

		p.inFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "mutation",
			Name:      "in_flight_current",
			Help:      "Current number of outstanding optimistic mutations.",
		})

		p.bulkActions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mutation",
			Name:      "bulk_actions_total",
			Help:      "Total bulk action dispatches by action and result.",
		}, []string{"action", "result"})

		p.bulkAffected = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mutation",
			Name:      "bulk_items_affected_total",
			Help:      "Total items actually mutated by bulk actions.",
		})

		p.partitionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "compute_seconds",
			Help:      "Partition recompute duration in seconds.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		})

		p.partitionItems = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "items_current",
			Help:      "Number of work items in the latest partition snapshot.",
		})

		p.refetches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "refetches_total",
			Help:      "Total canonical state fetches by result (success,failure).",
		}, []string{"result"})

		p.droppedEvents = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "events_dropped_total",
			Help:      "Partition notifications dropped due to slow subscribers.",
		})

		p.dragOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "gesture",
			Name:      "drags_total",
			Help:      "Completed drag lifecycles by outcome (dropped,noop,cancelled).",
		}, []string{"outcome"})

		p.heartbeats = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "presence",
			Name:      "heartbeats_total",
			Help:      "Heartbeat publish attempts by channel and result.",
		}, []string{"channel", "result"})

		p.presentGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "presence",
			Name:      "participants_current",
			Help:      "Participants currently live per channel.",
		}, []string{"channel"})

		p.reg.MustRegister(p.mutationResolved)
		p.reg.MustRegister(p.mutationLatency)
		p.reg.MustRegister(p.inFlightGauge)
		p.reg.MustRegister(p.bulkActions)
		p.reg.MustRegister(p.bulkAffected)
		p.reg.MustRegister(p.partitionLatency)
		p.reg.MustRegister(p.partitionItems)
		p.reg.MustRegister(p.refetches)
		p.reg.MustRegister(p.droppedEvents)
		p.reg.MustRegister(p.dragOutcomes)
		p.reg.MustRegister(p.heartbeats)
		p.reg.MustRegister(p.presentGauge)
	})
}

// MutationMetrics implementation

// RecordMutationResolved records one mutation cycle resolution.
func (p *PrometheusCollector) RecordMutationResolved(outcome string, duration float64) {
	p.ensureRegistered()
	p.mutationResolved.WithLabelValues(outcome).Inc()
	p.mutationLatency.WithLabelValues(outcome).Observe(duration)
}

// RecordInFlight sets the in-flight mutation gauge.
func (p *PrometheusCollector) RecordInFlight(count int) {
	p.ensureRegistered()
	p.inFlightGauge.Set(float64(count))
}

// RecordBulkAction records a bulk action dispatch.
func (p *PrometheusCollector) RecordBulkAction(action string, affected int, success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.bulkActions.WithLabelValues(action, result).Inc()
	p.bulkAffected.Add(float64(affected))
}

// PartitionMetrics implementation

// RecordPartitionCompute records one partition recompute.
func (p *PrometheusCollector) RecordPartitionCompute(items int, duration float64) {
	p.ensureRegistered()
	p.partitionItems.Set(float64(items))
	p.partitionLatency.Observe(duration)
}

// RecordRefetch records a canonical state fetch.
func (p *PrometheusCollector) RecordRefetch(success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.refetches.WithLabelValues(result).Inc()
}

// RecordPartitionEventDropped counts a dropped partition notification.
func (p *PrometheusCollector) RecordPartitionEventDropped() {
	p.ensureRegistered()
	p.droppedEvents.Inc()
}

// GestureMetrics implementation

// RecordDragResolved records a completed drag lifecycle.
func (p *PrometheusCollector) RecordDragResolved(outcome string) {
	p.ensureRegistered()
	p.dragOutcomes.WithLabelValues(outcome).Inc()
}

// PresenceMetrics implementation

// RecordHeartbeat records a heartbeat publish attempt.
func (p *PrometheusCollector) RecordHeartbeat(channel string, success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.heartbeats.WithLabelValues(channel, result).Inc()
}

// RecordPresent sets the present-participant gauge for a channel.
func (p *PrometheusCollector) RecordPresent(channel string, count int) {
	p.ensureRegistered()
	p.presentGauge.WithLabelValues(channel).Set(float64(count))
}
