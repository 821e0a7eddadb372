package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/krockxz/taskflow/types"
)

// Option configures a Tracker.
type Option func(*trackerOptions)

type trackerOptions struct {
	interval time.Duration
	window   time.Duration
	logger   types.Logger
	metrics  types.PresenceMetrics
	clock    func() time.Time
}

// WithInterval sets the heartbeat cadence.
func WithInterval(interval time.Duration) Option {
	return func(o *trackerOptions) {
		o.interval = interval
	}
}

// WithWindow sets the liveness window.
func WithWindow(window time.Duration) Option {
	return func(o *trackerOptions) {
		o.window = window
	}
}

// WithLogger sets the logger.
func WithLogger(logger types.Logger) Option {
	return func(o *trackerOptions) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics types.PresenceMetrics) Option {
	return func(o *trackerOptions) {
		o.metrics = metrics
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *trackerOptions) {
		o.clock = now
	}
}

// Tracker answers "who else is looking at this channel right now."
//
// Join subscribes the tracker to a channel's heartbeats, feeds them into
// the roster, and starts publishing this participant's own heartbeats.
// Leaving simply stops heartbeating and unsubscribes; the remote rosters
// let this participant decay. Joins are reference counted so nested views
// of the same channel share one subscription and one heartbeater.
//
// A background sweeper prunes expired records while at least one channel is
// joined, so push subscribers observe expiry without waiting for the next
// incoming heartbeat.
type Tracker struct {
	transport types.PresenceTransport
	self      types.ParticipantID
	interval  time.Duration
	roster    *Roster
	logger    types.Logger
	metrics   types.PresenceMetrics

	mu      sync.Mutex
	joined  map[types.ChannelID]*membership
	sweepCh chan struct{}
}

// membership tracks one joined channel.
type membership struct {
	refs        int
	heartbeater *Heartbeater
	unsubscribe func()
}

// NewTracker creates a presence tracker for one participant session.
//
// Parameters:
//   - transport: Presence pub/sub transport
//   - self: This session's participant ID
//   - opts: Functional options (interval, window, logger, metrics, clock)
//
// Returns:
//   - *Tracker: New tracker with an empty roster
//   - error: ErrNoParticipant if self is empty, or nil transport
func NewTracker(transport types.PresenceTransport, self types.ParticipantID, opts ...Option) (*Tracker, error) {
	if transport == nil {
		return nil, fmt.Errorf("presence: %w", types.ErrInvalidConfig)
	}
	if self == "" {
		return nil, ErrNoParticipant
	}

	options := trackerOptions{
		interval: DefaultHeartbeatInterval,
		window:   DefaultLivenessWindow,
	}
	for _, opt := range opts {
		opt(&options)
	}

	roster := NewRoster(options.window)
	if options.clock != nil {
		roster.SetClock(options.clock)
	}
	if options.metrics != nil {
		roster.SetMetrics(options.metrics)
	}

	return &Tracker{
		transport: transport,
		self:      self,
		interval:  options.interval,
		roster:    roster,
		logger:    options.logger,
		metrics:   options.metrics,
		joined:    make(map[types.ChannelID]*membership),
	}, nil
}

// Roster exposes the underlying roster for point-in-time queries and
// subscriptions outside of joined channels.
func (t *Tracker) Roster() *Roster {
	return t.roster
}

// Join subscribes to a channel and starts heartbeating on it.
//
// The returned leave function must be called when the referencing view
// unmounts. The last leave for a channel stops the heartbeater and cancels
// the subscription; remote rosters then see this participant expire through
// heartbeat silence.
//
// Parameters:
//   - ctx: Context for the initial heartbeat publish
//   - channel: Channel to join
//
// Returns:
//   - func(): Leave function (idempotent per Join call is the caller's duty)
//   - error: Subscription or initial publish failure
func (t *Tracker) Join(ctx context.Context, channel types.ChannelID) (func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if m, ok := t.joined[channel]; ok {
		m.refs++
		return t.leaveFunc(channel), nil
	}

	unsubscribe, err := t.transport.Subscribe(channel, func(hb types.Heartbeat) {
		t.roster.Observe(channel, hb)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe presence channel %s: %w", channel, err)
	}

	hb := NewHeartbeater(t.transport, channel, t.self, t.interval)
	if t.logger != nil {
		hb.SetLogger(t.logger)
	}
	if t.metrics != nil {
		hb.SetMetrics(t.metrics)
	}

	if err := hb.Start(ctx); err != nil {
		unsubscribe()
		return nil, err
	}

	t.joined[channel] = &membership{refs: 1, heartbeater: hb, unsubscribe: unsubscribe}

	if t.sweepCh == nil {
		t.sweepCh = make(chan struct{})
		go t.sweepLoop(t.sweepCh)
	}

	return t.leaveFunc(channel), nil
}

// Present returns the participants currently live on a channel.
//
// Point-in-time and non-blocking; degrades to an empty slice when the
// transport is disconnected or the channel is quiet.
func (t *Tracker) Present(channel types.ChannelID) []types.ParticipantID {
	return t.roster.Present(channel)
}

// Subscribe streams roster snapshots for a channel. See Roster.Subscribe.
func (t *Tracker) Subscribe(channel types.ChannelID) (<-chan []types.ParticipantID, func()) {
	return t.roster.Subscribe(channel)
}

// Close leaves every joined channel and stops the sweeper.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for channel, m := range t.joined {
		t.teardownLocked(channel, m)
	}
	t.joined = make(map[types.ChannelID]*membership)
	t.stopSweepLocked()
}

// leaveFunc builds the leave closure for one Join call. Caller must hold t.mu.
func (t *Tracker) leaveFunc(channel types.ChannelID) func() {
	var once sync.Once

	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			m, ok := t.joined[channel]
			if !ok {
				return
			}
			m.refs--
			if m.refs > 0 {
				return
			}

			t.teardownLocked(channel, m)
			delete(t.joined, channel)

			if len(t.joined) == 0 {
				t.stopSweepLocked()
			}
		})
	}
}

// teardownLocked stops one membership. Caller must hold t.mu.
func (t *Tracker) teardownLocked(channel types.ChannelID, m *membership) {
	if err := m.heartbeater.Stop(); err != nil && t.logger != nil {
		t.logger.Debug("heartbeater stop", "channel", channel, "error", err)
	}
	m.unsubscribe()
}

// stopSweepLocked stops the sweeper if running. Caller must hold t.mu.
func (t *Tracker) stopSweepLocked() {
	if t.sweepCh != nil {
		close(t.sweepCh)
		t.sweepCh = nil
	}
}

// sweepLoop prunes expired records so push subscribers observe expiry.
func (t *Tracker) sweepLoop(stopCh chan struct{}) {
	interval := t.roster.Window() / 3
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			t.roster.SweepAll()
		}
	}
}
