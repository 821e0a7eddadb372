package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/krockxz/taskflow/internal/hash"
	"github.com/krockxz/taskflow/internal/natsutil"
	"github.com/krockxz/taskflow/types"
)

// Default subject prefixes for NATS-backed channels.
const (
	DefaultPresencePrefix    = "taskflow.presence"
	DefaultInvalidateSubject = "taskflow.invalidate"
)

// NATSPresence implements types.PresenceTransport over core NATS pub/sub.
//
// Heartbeats are fire-and-forget messages on a per-channel subject; nothing
// is retained by the server. Channel ids are tokenized so arbitrary
// user-supplied ids cannot break subject syntax.
type NATSPresence struct {
	conn   *nats.Conn
	prefix string
	logger types.Logger
}

// Compile-time assertion that NATSPresence implements PresenceTransport.
var _ types.PresenceTransport = (*NATSPresence)(nil)

// NewNATSPresence creates a presence transport over an existing connection.
//
// Parameters:
//   - conn: NATS connection
//   - prefix: Subject prefix (DefaultPresencePrefix when empty)
//
// Returns:
//   - *NATSPresence: New transport
//   - error: ErrInvalidConfig if conn is nil
func NewNATSPresence(conn *nats.Conn, prefix string) (*NATSPresence, error) {
	if conn == nil {
		return nil, fmt.Errorf("nats presence: %w", types.ErrInvalidConfig)
	}
	if prefix == "" {
		prefix = DefaultPresencePrefix
	}

	return &NATSPresence{conn: conn, prefix: prefix}, nil
}

// SetLogger sets the logger for decode diagnostics. Optional.
func (t *NATSPresence) SetLogger(logger types.Logger) {
	t.logger = logger
}

// Publish sends one heartbeat on the channel's subject.
func (t *NATSPresence) Publish(_ context.Context, channel types.ChannelID, hb types.Heartbeat) error {
	data, err := json.Marshal(hb)
	if err != nil {
		return fmt.Errorf("failed to encode heartbeat: %w", err)
	}

	if err := t.conn.Publish(t.subject(channel), data); err != nil {
		if natsutil.IsConnectivityError(err) {
			return fmt.Errorf("%w: heartbeat publish on %s: %w", types.ErrRemoteUnavailable, channel, err)
		}

		return fmt.Errorf("failed to publish heartbeat on %s: %w", channel, err)
	}

	return nil
}

// Subscribe delivers decoded heartbeats on the channel to fn.
//
// Undecodable payloads are dropped. Presence is best-effort: a malformed
// heartbeat is indistinguishable from a missed one.
func (t *NATSPresence) Subscribe(channel types.ChannelID, fn func(types.Heartbeat)) (func(), error) {
	sub, err := t.conn.Subscribe(t.subject(channel), func(msg *nats.Msg) {
		var hb types.Heartbeat
		if err := json.Unmarshal(msg.Data, &hb); err != nil {
			if t.logger != nil {
				t.logger.Debug("dropping malformed heartbeat", "channel", channel, "error", err)
			}

			return
		}
		fn(hb)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe presence channel %s: %w", channel, err)
	}

	return func() { _ = sub.Unsubscribe() }, nil
}

// Connected reports whether the NATS connection is currently up.
func (t *NATSPresence) Connected() bool {
	return t.conn.Status() == nats.CONNECTED
}

func (t *NATSPresence) subject(channel types.ChannelID) string {
	return hash.ChannelSubject(t.prefix, string(channel))
}

// NATSInvalidation is the realtime invalidation bridge: it subscribes to an
// opaque change signal and triggers a refetch callback for every message.
//
// The change signal contract is at-least-once per actual change, so the
// callback must be idempotent; duplicate and redundant signals coalesce
// into the same refetch on the board side.
type NATSInvalidation struct {
	conn    *nats.Conn
	subject string
	logger  types.Logger
}

// NewNATSInvalidation creates an invalidation bridge.
//
// Parameters:
//   - conn: NATS connection
//   - subject: Signal subject (DefaultInvalidateSubject when empty)
//
// Returns:
//   - *NATSInvalidation: New bridge, not yet bound
//   - error: ErrInvalidConfig if conn is nil
func NewNATSInvalidation(conn *nats.Conn, subject string) (*NATSInvalidation, error) {
	if conn == nil {
		return nil, fmt.Errorf("nats invalidation: %w", types.ErrInvalidConfig)
	}
	if subject == "" {
		subject = DefaultInvalidateSubject
	}

	return &NATSInvalidation{conn: conn, subject: subject}, nil
}

// SetLogger sets the logger. Optional.
func (b *NATSInvalidation) SetLogger(logger types.Logger) {
	b.logger = logger
}

// Bind subscribes the bridge and invokes onSignal for every change signal.
//
// The message payload is deliberately ignored: table or row granularity is
// irrelevant, the only information is "something changed". Typically
// onSignal is Board.Invalidate.
//
// Parameters:
//   - onSignal: Idempotent refetch trigger
//
// Returns:
//   - func(): Unbind function
//   - error: Subscription failure
func (b *NATSInvalidation) Bind(onSignal func()) (func(), error) {
	sub, err := b.conn.Subscribe(b.subject, func(_ *nats.Msg) {
		onSignal()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe invalidation subject %s: %w", b.subject, err)
	}

	if b.logger != nil {
		b.logger.Debug("invalidation bridge bound", "subject", b.subject)
	}

	return func() { _ = sub.Unsubscribe() }, nil
}

// Signal publishes a change signal. Intended for the writing side and for
// tests; the reading side only needs Bind.
func (b *NATSInvalidation) Signal() error {
	return b.conn.Publish(b.subject, nil)
}
