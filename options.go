package taskflow

import (
	"github.com/nats-io/nats.go"

	"github.com/krockxz/taskflow/types"
)

// Option configures a Board with optional dependencies.
type Option func(*boardOptions)

// boardOptions holds optional Board configuration.
type boardOptions struct {
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
	participant types.ParticipantID

	auditConn   *nats.Conn
	auditStream string
	auditPrefix string
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewBoard
//
// Example:
//
//	hooks := &taskflow.Hooks{
//	    OnMutationResolved: func(ctx context.Context, result taskflow.MutationResult) error {
//	        return notifyUser(result)
//	    },
//	}
//	board, err := taskflow.NewBoard(&cfg, remote, lanes, taskflow.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *boardOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewBoard
//
// Example:
//
//	collector := taskflow.NewPrometheusMetrics(prometheus.DefaultRegisterer, "taskflow")
//	board, err := taskflow.NewBoard(&cfg, remote, lanes, taskflow.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *boardOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewBoard
//
// Example:
//
//	logger := taskflow.NewSlogLogger(slog.Default())
//	board, err := taskflow.NewBoard(&cfg, remote, lanes, taskflow.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *boardOptions) {
		o.logger = logger
	}
}

// WithAuditTrail enables the durable audit trail over a NATS connection
// with JetStream.
//
// One event is appended per actually mutated item: a bulk action over N
// items produces one event per confirmed item, never an aggregate record.
// Hard deletes are never audited. Audit publish failures are logged and
// reported through OnError but never roll back a confirmed mutation.
//
// Parameters:
//   - conn: NATS connection with JetStream enabled
//   - stream: Stream name (e.g. "TASKFLOW_AUDIT")
//   - prefix: Subject prefix for events (e.g. "taskflow.audit")
//
// Returns:
//   - Option: Functional option for NewBoard; recorder initialization
//     errors surface from NewBoard
func WithAuditTrail(conn *nats.Conn, stream, prefix string) Option {
	return func(o *boardOptions) {
		o.auditConn = conn
		o.auditStream = stream
		o.auditPrefix = prefix
	}
}

// WithParticipant sets the local participant identity recorded as the
// actor on audit events. Optional; audit events carry an empty actor
// when unset.
//
// Parameters:
//   - participant: The local participant id
//
// Returns:
//   - Option: Functional option for NewBoard
func WithParticipant(participant types.ParticipantID) Option {
	return func(o *boardOptions) {
		o.participant = participant
	}
}
