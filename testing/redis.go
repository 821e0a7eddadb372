package testing

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// StartMiniredis starts an in-process Redis server and a connected client
// for testing the Redis presence transport.
//
// Parameters:
//   - t: Testing context for cleanup
//
// Returns:
//   - *miniredis.Miniredis: The in-process server
//   - *redis.Client: Connected client (closed automatically on test completion)
func StartMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	srv := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return srv, client
}
