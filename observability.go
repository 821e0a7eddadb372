package taskflow

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/krockxz/taskflow/internal/logging"
	"github.com/krockxz/taskflow/internal/metrics"
)

// NewPrometheusMetrics creates a Prometheus-backed metrics collector.
//
// Metric registration is lazy and idempotent; passing the same registerer
// to multiple boards is safe.
//
// Parameters:
//   - reg: Prometheus registerer (e.g. prometheus.DefaultRegisterer)
//   - namespace: Metric namespace prefix (e.g. "taskflow")
//
// Returns:
//   - MetricsCollector: Collector for WithMetrics
//
// Example:
//
//	collector := taskflow.NewPrometheusMetrics(prometheus.DefaultRegisterer, "taskflow")
//	board, err := taskflow.NewBoard(&cfg, remote, lanes, taskflow.WithMetrics(collector))
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewSlogLogger adapts a slog.Logger to the Logger interface.
//
// Parameters:
//   - logger: Structured logger instance (slog.Default() when nil)
//
// Returns:
//   - Logger: Adapter for WithLogger
//
// Example:
//
//	logger := taskflow.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
//	board, err := taskflow.NewBoard(&cfg, remote, lanes, taskflow.WithLogger(logger))
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(logger)
}
