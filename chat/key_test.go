package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alumnihub/errors"
)

func TestKeyIsOrderIndependent(t *testing.T) {
	req := require.New(t)

	k1, err := Key("alice", "bob")
	req.NoError(err)
	k2, err := Key("bob", "alice")
	req.NoError(err)

	req.Equal(k1, k2)
	req.Equal("alice-bob", k1)
}

func TestKeyRejectsSelfConversation(t *testing.T) {
	_, err := Key("alice", "alice")
	require.ErrorIs(t, err, errors.ErrSameParticipant)
}

func TestKeyInvolvesMatchesSubstrings(t *testing.T) {
	req := require.New(t)

	req.True(KeyInvolves("alice-bob", "alice"))
	req.True(KeyInvolves("alice-bob", "bob"))
	req.False(KeyInvolves("alice-bob", "carol"))

	// containment, not segment equality
	req.True(KeyInvolves("alice-bob", "lice"))
}
