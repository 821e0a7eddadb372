package presence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/krockxz/taskflow/types"
)

// Defaults for heartbeat cadence and liveness.
//
// The window should be a small multiple of the interval so that a couple of
// lost heartbeats do not flap presence, while true absence is noticed
// within tens of seconds.
const (
	DefaultHeartbeatInterval = 10 * time.Second
	DefaultLivenessWindow    = 30 * time.Second
)

// Common errors for heartbeater operations.
var (
	ErrNotStarted     = errors.New("heartbeater not started")
	ErrAlreadyStarted = errors.New("heartbeater already started")
	ErrNoParticipant  = errors.New("participant ID not set")
)

// Heartbeater publishes periodic heartbeats for one participant on one
// channel.
//
// Heartbeats are sent immediately on Start and then on a fixed interval
// until Stop. A stopped heartbeater can be started again, as happens when
// a participant rejoins a channel. Stop sends no leave message: remote
// rosters infer absence from heartbeat silence, which keeps crashed
// processes and clean stops on the same code path.
//
// Publish failures are logged and counted but never stop the loop; the
// transport may recover before the roster's liveness window lapses.
type Heartbeater struct {
	transport   types.PresenceTransport
	channel     types.ChannelID
	participant types.ParticipantID
	interval    time.Duration

	logger  types.Logger
	metrics types.PresenceMetrics

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticker  *time.Ticker
}

// NewHeartbeater creates a heartbeater.
//
// Parameters:
//   - transport: Presence transport to publish on
//   - channel: Channel to heartbeat
//   - participant: This session's participant ID
//   - interval: Heartbeat cadence (DefaultHeartbeatInterval when <= 0)
//
// Returns:
//   - *Heartbeater: New heartbeater, not yet started
func NewHeartbeater(transport types.PresenceTransport, channel types.ChannelID, participant types.ParticipantID, interval time.Duration) *Heartbeater {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}

	return &Heartbeater{
		transport:   transport,
		channel:     channel,
		participant: participant,
		interval:    interval,
	}
}

// SetLogger sets the logger for publish failures. Optional.
func (h *Heartbeater) SetLogger(logger types.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger = logger
}

// SetMetrics sets the metrics collector for heartbeat results. Optional.
func (h *Heartbeater) SetMetrics(metrics types.PresenceMetrics) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.metrics = metrics
}

// Start publishes the first heartbeat and begins the background loop.
//
// Parameters:
//   - ctx: Context for the initial publish
//
// Returns:
//   - error: ErrAlreadyStarted if running, ErrNoParticipant if the
//     participant ID is empty, or the initial publish failure
func (h *Heartbeater) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return ErrAlreadyStarted
	}
	if h.participant == "" {
		return ErrNoParticipant
	}

	h.started = true
	h.ticker = time.NewTicker(h.interval)
	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})

	if err := h.publish(ctx); err != nil {
		h.started = false
		h.ticker.Stop()

		return fmt.Errorf("failed to publish initial heartbeat: %w", err)
	}

	go h.publishLoop(h.stopCh, h.doneCh, h.ticker)

	return nil
}

// Stop halts the heartbeat loop.
//
// Blocks until the loop goroutine exits. No leave message is sent; the
// remote roster lets this participant expire when the liveness window
// lapses.
//
// Returns:
//   - error: ErrNotStarted if not running
func (h *Heartbeater) Stop() error {
	h.mu.Lock()

	if !h.started {
		h.mu.Unlock()
		return ErrNotStarted
	}

	h.ticker.Stop()
	close(h.stopCh)
	h.started = false
	done := h.doneCh

	h.mu.Unlock()

	<-done

	return nil
}

// IsStarted reports whether the loop is running.
func (h *Heartbeater) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.started
}

// publishLoop is the background goroutine publishing on each tick. The
// channels and ticker are passed in so a later restart cannot swap them
// out from under a still-draining loop.
func (h *Heartbeater) publishLoop(stopCh, doneCh chan struct{}, ticker *time.Ticker) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := h.publish(ctx)
			cancel()

			if err != nil {
				h.record(false)
				if logger := h.currentLogger(); logger != nil {
					logger.Warn("heartbeat publish failed",
						"channel", h.channel,
						"participant", h.participant,
						"error", err,
					)
				}
			} else {
				h.record(true)
			}
		}
	}
}

// publish sends one heartbeat on the transport.
func (h *Heartbeater) publish(ctx context.Context) error {
	hb := types.Heartbeat{
		Participant: h.participant,
		SentAt:      time.Now(),
	}

	if err := h.transport.Publish(ctx, h.channel, hb); err != nil {
		return fmt.Errorf("failed to publish heartbeat for %s on %s: %w", h.participant, h.channel, err)
	}

	return nil
}

func (h *Heartbeater) currentLogger() types.Logger {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.logger
}

func (h *Heartbeater) record(success bool) {
	h.mu.Lock()
	metrics := h.metrics
	channel := h.channel
	h.mu.Unlock()

	if metrics != nil {
		metrics.RecordHeartbeat(string(channel), success)
	}
}
