// Package testing provides test utilities for the taskflow library.
//
// This package offers helpers for setting up test environments, particularly
// embedded transport servers for integration testing. It follows Go's
// convention of providing testing utilities in a dedicated package (similar
// to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - StartMiniredis: In-process Redis server and client
//   - NewTestLogger: Logger writing to testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    flowtest "github.com/krockxz/taskflow/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := flowtest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
