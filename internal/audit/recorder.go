// Package audit emits one durable event per actually mutated work item.
//
// The audit trail is append-only and item-granular: a bulk action over N
// items produces one event per item the remote endpoint confirmed, never a
// single aggregate record. Hard deletes are not audited because the deleted
// entity can no longer anchor an audit record.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/krockxz/taskflow/internal/hash"
	"github.com/krockxz/taskflow/types"
)

// ErrNoStream is returned when Record is called before EnsureStream.
var ErrNoStream = errors.New("audit stream not initialized")

// Event is a single audit-trail entry for one mutated work item.
type Event struct {
	// Item is the mutated work item.
	Item types.ItemID `json:"item"`

	// Action is what happened ("reassign", "set_status", "set_priority").
	Action string `json:"action"`

	// Actor is the participant who triggered the mutation.
	Actor types.ParticipantID `json:"actor"`

	// From and To capture the assignee change for reassignments; empty
	// for other actions.
	From types.LaneID `json:"from,omitempty"`
	To   types.LaneID `json:"to,omitempty"`

	// At is when the mutation was confirmed.
	At time.Time `json:"at"`
}

// Recorder publishes audit events to a JetStream stream.
//
// Publish failures are surfaced to the caller but are expected to be
// treated as recoverable: a lost audit event must never roll back a
// confirmed mutation.
type Recorder struct {
	js     jetstream.JetStream
	stream string
	prefix string
	logger types.Logger

	ready bool
}

// New creates an audit recorder over an existing NATS connection.
//
// Parameters:
//   - conn: NATS connection with JetStream enabled
//   - stream: Stream name (e.g. "TASKFLOW_AUDIT")
//   - prefix: Subject prefix for events (e.g. "taskflow.audit")
//
// Returns:
//   - *Recorder: New recorder; call EnsureStream before Record
//   - error: JetStream initialization failure
func New(conn *nats.Conn, stream, prefix string) (*Recorder, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	return &Recorder{
		js:     js,
		stream: stream,
		prefix: prefix,
	}, nil
}

// SetLogger sets the logger for publish diagnostics. Optional.
func (r *Recorder) SetLogger(logger types.Logger) {
	r.logger = logger
}

// EnsureStream creates or updates the audit stream.
//
// Idempotent: safe to call on every process start.
//
// Parameters:
//   - ctx: Context for the JetStream API call
//
// Returns:
//   - error: Stream creation failure
func (r *Recorder) EnsureStream(ctx context.Context) error {
	_, err := r.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     r.stream,
		Subjects: []string{r.prefix + ".>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure audit stream %s: %w", r.stream, err)
	}

	r.ready = true

	return nil
}

// Record appends one audit event.
//
// The subject embeds the item id so per-item audit history can be replayed
// with a single subject filter.
//
// Parameters:
//   - ctx: Context for the publish
//   - event: The event to append
//
// Returns:
//   - error: ErrNoStream before EnsureStream, or the publish failure
func (r *Recorder) Record(ctx context.Context, event Event) error {
	if !r.ready {
		return ErrNoStream
	}

	if event.At.IsZero() {
		event.At = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}

	subject := hash.ChannelSubject(r.prefix, string(event.Item))
	if _, err := r.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish audit event for %s: %w", event.Item, err)
	}

	return nil
}

// RecordAll appends one event per item, continuing past per-item failures.
//
// Returns:
//   - error: The first failure encountered, if any (all items are attempted)
func (r *Recorder) RecordAll(ctx context.Context, events []Event) error {
	var firstErr error
	for _, event := range events {
		if err := r.Record(ctx, event); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if r.logger != nil {
				r.logger.Warn("audit event dropped", "item", event.Item, "action", event.Action, "error", err)
			}
		}
	}

	return firstErr
}
