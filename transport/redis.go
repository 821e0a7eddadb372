package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krockxz/taskflow/types"
)

// RedisPresence implements types.PresenceTransport over Redis pub/sub.
//
// Useful for deployments that already run Redis for live fan-out and have
// no NATS. Semantics match NATSPresence: heartbeats are fire-and-forget
// and nothing is retained by the server.
type RedisPresence struct {
	client *redis.Client
	prefix string
	logger types.Logger

	mu     sync.Mutex
	closed bool
	subs   []*redis.PubSub
}

// Compile-time assertion that RedisPresence implements PresenceTransport.
var _ types.PresenceTransport = (*RedisPresence)(nil)

// NewRedisPresence creates a presence transport over an existing client.
//
// Parameters:
//   - client: Redis client
//   - prefix: Pub/sub channel prefix ("taskflow:presence" when empty)
//
// Returns:
//   - *RedisPresence: New transport
//   - error: ErrInvalidConfig if client is nil
func NewRedisPresence(client *redis.Client, prefix string) (*RedisPresence, error) {
	if client == nil {
		return nil, fmt.Errorf("redis presence: %w", types.ErrInvalidConfig)
	}
	if prefix == "" {
		prefix = "taskflow:presence"
	}

	return &RedisPresence{client: client, prefix: prefix}, nil
}

// SetLogger sets the logger for decode diagnostics. Optional.
func (t *RedisPresence) SetLogger(logger types.Logger) {
	t.logger = logger
}

// Publish sends one heartbeat on the channel.
func (t *RedisPresence) Publish(ctx context.Context, channel types.ChannelID, hb types.Heartbeat) error {
	data, err := json.Marshal(hb)
	if err != nil {
		return fmt.Errorf("failed to encode heartbeat: %w", err)
	}

	if err := t.client.Publish(ctx, t.key(channel), data).Err(); err != nil {
		return fmt.Errorf("failed to publish heartbeat on %s: %w", channel, err)
	}

	return nil
}

// Subscribe delivers decoded heartbeats on the channel to fn.
func (t *RedisPresence) Subscribe(channel types.ChannelID, fn func(types.Heartbeat)) (func(), error) {
	ps := t.client.Subscribe(context.Background(), t.key(channel))

	// Force the subscription to be established before returning so a
	// heartbeat published right after Subscribe is not lost.
	if _, err := ps.Receive(context.Background()); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe presence channel %s: %w", channel, err)
	}

	t.mu.Lock()
	t.subs = append(t.subs, ps)
	t.mu.Unlock()

	go func() {
		for msg := range ps.Channel() {
			var hb types.Heartbeat
			if err := json.Unmarshal([]byte(msg.Payload), &hb); err != nil {
				if t.logger != nil {
					t.logger.Debug("dropping malformed heartbeat", "channel", channel, "error", err)
				}

				continue
			}
			fn(hb)
		}
	}()

	return func() { _ = ps.Close() }, nil
}

// Connected reports whether the Redis connection answers a short ping.
//
// The ping is bounded well below the heartbeat interval so a dead server
// cannot stall callers.
func (t *RedisPresence) Connected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	return t.client.Ping(ctx).Err() == nil
}

// Close cancels every subscription created through this transport.
func (t *RedisPresence) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for _, ps := range t.subs {
		if err := ps.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.subs = nil

	return firstErr
}

func (t *RedisPresence) key(channel types.ChannelID) string {
	return t.prefix + ":" + string(channel)
}
