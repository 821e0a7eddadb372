// Package hash provides stable tokenization of user-supplied identifiers
// for use in messaging subjects.
package hash

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// subjectSafe reports whether a string can be embedded verbatim as a single
// NATS subject token. Dots separate tokens and spaces, wildcards, and
// control characters are illegal inside them.
func subjectSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}

// SubjectToken converts an arbitrary identifier into a single subject-safe
// token.
//
// Identifiers that are already safe pass through unchanged so subjects stay
// human-readable; anything else is replaced by a stable xxh3 digest. Two
// distinct identifiers that both need hashing collide only with xxh3's
// 64-bit collision probability, which is acceptable for channel fan-out.
//
// Parameters:
//   - id: Arbitrary identifier (channel id, lane id)
//
// Returns:
//   - string: Subject-safe token, stable across processes
func SubjectToken(id string) string {
	if subjectSafe(id) {
		return id
	}

	return fmt.Sprintf("x%016x", xxh3.HashString(id))
}

// ChannelSubject builds the full subject for a presence channel under the
// given prefix.
//
// Parameters:
//   - prefix: Subject prefix (e.g. "taskflow.presence")
//   - id: Channel identifier
//
// Returns:
//   - string: prefix.token
func ChannelSubject(prefix, id string) string {
	prefix = strings.TrimSuffix(prefix, ".")

	return prefix + "." + SubjectToken(id)
}
