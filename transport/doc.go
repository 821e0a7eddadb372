// Package transport provides concrete adapters for the engine's external
// collaborators: the presence pub/sub primitive (NATS or Redis), the
// realtime invalidation signal (NATS), and the remote mutation/fetch
// service (HTTP).
//
// The core packages only see the interfaces in types; everything here is
// replaceable glue. Presence transports are best-effort by design: publish
// failures and dropped subscriptions degrade presence to "nobody shown",
// never to an error surfaced to the user.
package transport
