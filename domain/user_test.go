package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	req := require.New(t)

	req.Equal("alice", DisplayName("alice@campus.edu"))
	req.Equal("a.b+c", DisplayName("a.b+c@campus.edu"))

	// No "@" means no handle at all, not the raw input.
	req.Equal("", DisplayName("not-an-email"))
	req.Equal("", DisplayName(""))
}

func TestTimestampRoundTrip(t *testing.T) {
	req := require.New(t)

	now := time.Now()
	req.True(ParseTimestamp(Timestamp(now)).Equal(now))

	// Garbage parses to the zero time, which sorts before everything.
	req.True(ParseTimestamp("yesterday-ish").IsZero())
}
