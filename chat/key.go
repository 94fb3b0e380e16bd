// Package chat implements the direct and topic messaging channels on
// top of the store.
package chat

import (
	"strings"

	"alumnihub/errors"
)

// Key derives the canonical id of a two-party conversation. Both
// participants compute the same key regardless of who starts.
func Key(a, b string) (string, error) {
	if a == b {
		return "", errors.ErrSameParticipant
	}
	if a > b {
		a, b = b, a
	}
	return a + "-" + b, nil
}

// KeyInvolves reports whether a conversation key names the user.
// Substring containment, not segment equality: an id that happens to
// be a prefix of another would also match. Kept as is because the
// key format has always been checked this way and ids are UUIDs in
// practice.
func KeyInvolves(key, userID string) bool {
	return strings.Contains(key, userID)
}
