package types

import (
	"context"
	"time"
)

// ParticipantID identifies a participant (a user session) in presence
// tracking. No durable identity is implied beyond the current session.
type ParticipantID string

// ChannelID identifies a logical presence channel, such as a board or an
// individual item being viewed. Channels are independent: a participant can
// be present on several channels at once, each with its own liveness window.
type ChannelID string

// Heartbeat is the wire payload published on a presence channel.
type Heartbeat struct {
	// Participant is the sender.
	Participant ParticipantID `json:"participant"`

	// SentAt is the sender's wall-clock send time. Receivers track
	// liveness against their own clock; SentAt is diagnostic only.
	SentAt time.Time `json:"sentAt"`
}

// PresenceRecord tracks the most recent heartbeat for a (participant,
// channel) pair.
//
// Records are created on first heartbeat, refreshed on each subsequent one,
// and expire implicitly: a record with no heartbeat inside the liveness
// window is treated as absent. There is no explicit leave event.
type PresenceRecord struct {
	Participant     ParticipantID `json:"participant"`
	Channel         ChannelID     `json:"channel"`
	LastHeartbeatAt time.Time     `json:"lastHeartbeatAt"`
}

// PresenceTransport is the external pub/sub primitive presence runs over.
//
// Implementations must tolerate heartbeat silence as the normal disconnect
// path; there is no leave message. Transport failures are never fatal to
// presence tracking: publishing may fail and subscriptions may go quiet,
// and the roster simply decays to empty.
type PresenceTransport interface {
	// Publish sends a heartbeat on the given channel.
	Publish(ctx context.Context, channel ChannelID, hb Heartbeat) error

	// Subscribe registers a callback for heartbeats on the given channel.
	// The callback may be invoked from a transport goroutine and must not
	// block. The returned function cancels the subscription.
	Subscribe(channel ChannelID, fn func(Heartbeat)) (func(), error)

	// Connected reports whether the transport currently has a live
	// connection. Must not block.
	Connected() bool
}
