// Package presence maintains a live roster of participants per channel,
// driven entirely by heartbeats.
//
// A participant is present on a channel if and only if its most recent
// heartbeat arrived within the liveness window. There is no explicit leave
// message: crashed tabs and closed laptops go silent, and silence is the
// normal disconnect path. Nothing is persisted; a restarted process rebuilds
// the roster purely from incoming heartbeats.
//
// The package has three pieces:
//   - Roster: the in-memory liveness bookkeeping and subscriber fan-out
//   - Heartbeater: a background publisher sending this participant's
//     heartbeats on a fixed interval while a channel is joined
//   - Tracker: glue that joins channels, wiring a transport subscription
//     and a Heartbeater per channel, plus an expiry sweeper
package presence
