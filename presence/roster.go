package presence

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/krockxz/taskflow/types"
)

// Roster tracks heartbeat-derived presence for any number of independent
// channels.
//
// Each (participant, channel) pair holds only the time of its most recent
// heartbeat. Expiry is implicit: Present filters against the liveness
// window at query time, and Sweep prunes stale entries and notifies
// subscribers. Queries never block and never fail; an unknown or quiet
// channel simply reads as empty.
type Roster struct {
	window time.Duration
	now    func() time.Time

	channels  *xsync.Map[types.ChannelID, *channelRoster]
	nextSubID atomic.Uint64

	metrics types.PresenceMetrics
}

// channelRoster holds one channel's records and subscribers.
type channelRoster struct {
	mu   sync.Mutex
	last map[types.ParticipantID]time.Time

	subscribers *xsync.Map[uint64, *rosterSubscriber]
}

// rosterSubscriber wraps a subscriber channel with close-once semantics.
// The mutex covers both the closed check and the send so a concurrent close
// can never race a send on the same channel.
type rosterSubscriber struct {
	ch     chan []types.ParticipantID
	mu     sync.Mutex
	closed bool
}

// trySend delivers a roster snapshot without blocking. Snapshots for slow
// subscribers are dropped; the next heartbeat or sweep delivers a fresh one.
func (s *rosterSubscriber) trySend(roster []types.ParticipantID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- roster:
	default:
	}
}

// close safely closes the subscriber's channel.
func (s *rosterSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// NewRoster creates a roster with the given liveness window.
//
// Parameters:
//   - window: Duration after the last heartbeat during which a participant
//     counts as present (DefaultLivenessWindow when <= 0)
//
// Returns:
//   - *Roster: Empty roster
func NewRoster(window time.Duration) *Roster {
	if window <= 0 {
		window = DefaultLivenessWindow
	}

	return &Roster{
		window:   window,
		now:      time.Now,
		channels: xsync.NewMap[types.ChannelID, *channelRoster](),
	}
}

// SetClock overrides the time source. Intended for tests.
func (r *Roster) SetClock(now func() time.Time) {
	r.now = now
}

// SetMetrics sets the metrics collector for roster gauges.
//
// Optional. If not set, metrics are not recorded.
func (r *Roster) SetMetrics(metrics types.PresenceMetrics) {
	r.metrics = metrics
}

// Window returns the configured liveness window.
func (r *Roster) Window() time.Duration {
	return r.window
}

// Observe records a heartbeat for a (participant, channel) pair.
//
// Creates the record on first heartbeat and refreshes it on every
// subsequent one, then fans the updated roster out to subscribers.
func (r *Roster) Observe(channel types.ChannelID, hb types.Heartbeat) {
	if hb.Participant == "" {
		return
	}

	cr := r.channelFor(channel)

	cr.mu.Lock()
	cr.last[hb.Participant] = r.now()
	roster := cr.presentLocked(r.now(), r.window)
	cr.mu.Unlock()

	r.publish(channel, cr, roster)
}

// Present returns the participants currently live on a channel.
//
// This is a point-in-time query: it never blocks, and it degrades to an
// empty slice for channels with no live heartbeats (including when the
// underlying transport is disconnected and records have decayed).
//
// Returns:
//   - []types.ParticipantID: Live participants in sorted order
func (r *Roster) Present(channel types.ChannelID) []types.ParticipantID {
	cr, ok := r.channels.Load(channel)
	if !ok {
		return []types.ParticipantID{}
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()

	return cr.presentLocked(r.now(), r.window)
}

// Record returns the presence record for a (participant, channel) pair.
//
// Returns:
//   - types.PresenceRecord: The record (zero value if absent)
//   - bool: true if a heartbeat has been observed and not yet pruned
func (r *Roster) Record(channel types.ChannelID, participant types.ParticipantID) (types.PresenceRecord, bool) {
	cr, ok := r.channels.Load(channel)
	if !ok {
		return types.PresenceRecord{}, false
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()

	at, ok := cr.last[participant]
	if !ok {
		return types.PresenceRecord{}, false
	}

	return types.PresenceRecord{
		Participant:     participant,
		Channel:         channel,
		LastHeartbeatAt: at,
	}, true
}

// Subscribe returns a channel receiving roster snapshots for one presence
// channel.
//
// The subscriber receives the current roster immediately, then a snapshot
// after every observed heartbeat and every sweep that changed the roster.
// The channel is buffered; snapshots to a slow subscriber are dropped in
// favor of newer ones.
//
// Returns:
//   - <-chan []types.ParticipantID: Roster snapshot stream
//   - func(): Unsubscribe function
func (r *Roster) Subscribe(channel types.ChannelID) (<-chan []types.ParticipantID, func()) {
	cr := r.channelFor(channel)
	id := r.nextSubID.Add(1)

	sub := &rosterSubscriber{ch: make(chan []types.ParticipantID, 4)}
	cr.subscribers.Store(id, sub)

	sub.trySend(r.Present(channel))

	unsubscribe := func() {
		if s, ok := cr.subscribers.LoadAndDelete(id); ok {
			s.close()
		}
	}

	return sub.ch, unsubscribe
}

// Sweep prunes expired records on a channel and notifies subscribers when
// the live roster shrank.
//
// Sweeping is an optimization for memory and for push-style subscribers;
// Present is already correct without it.
func (r *Roster) Sweep(channel types.ChannelID) {
	cr, ok := r.channels.Load(channel)
	if !ok {
		return
	}

	now := r.now()

	cr.mu.Lock()
	before := len(cr.last)
	for p, at := range cr.last {
		if now.Sub(at) > r.window {
			delete(cr.last, p)
		}
	}
	pruned := before - len(cr.last)
	roster := cr.presentLocked(now, r.window)
	cr.mu.Unlock()

	if pruned > 0 {
		r.publish(channel, cr, roster)
	}
}

// SweepAll sweeps every channel the roster has seen.
func (r *Roster) SweepAll() {
	r.channels.Range(func(channel types.ChannelID, _ *channelRoster) bool {
		r.Sweep(channel)
		return true
	})
}

// publish fans a roster snapshot out to a channel's subscribers and records
// the present-count gauge.
func (r *Roster) publish(channel types.ChannelID, cr *channelRoster, roster []types.ParticipantID) {
	if r.metrics != nil {
		r.metrics.RecordPresent(string(channel), len(roster))
	}

	cr.subscribers.Range(func(_ uint64, sub *rosterSubscriber) bool {
		sub.trySend(roster)
		return true
	})
}

// channelFor returns the channel roster, creating it on first use.
func (r *Roster) channelFor(channel types.ChannelID) *channelRoster {
	cr, _ := r.channels.LoadOrCompute(channel, func() (*channelRoster, bool) {
		return &channelRoster{
			last:        make(map[types.ParticipantID]time.Time),
			subscribers: xsync.NewMap[uint64, *rosterSubscriber](),
		}, false
	})

	return cr
}

// presentLocked computes the live participant set. Caller must hold cr.mu.
func (cr *channelRoster) presentLocked(now time.Time, window time.Duration) []types.ParticipantID {
	out := make([]types.ParticipantID, 0, len(cr.last))
	for p, at := range cr.last {
		if now.Sub(at) <= window {
			out = append(out, p)
		}
	}
	slices.Sort(out)

	return out
}
