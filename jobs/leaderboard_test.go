package jobs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"alumnihub/domain"
)

func TestLeaderboardScoring(t *testing.T) {
	req := require.New(t)

	users := []domain.User{
		{ID: "u1", Domains: []string{"AI"}, Skills: []string{"go", "python"}},
		{ID: "u2", Domains: []string{"Systems Design"}},
		{ID: "u3", Domains: []string{"Underwater Basketry"}},
	}
	apps := []domain.JobApplication{
		{UserID: "u2", JobID: "j1"},
		{UserID: "u2", JobID: "j2"},
		{UserID: "u3", JobID: "j1"},
	}

	ranked := Leaderboard(users, apps)
	req.Len(ranked, 3)

	// u2: 2*10 + 3*2 = 26, u1: 5*2 + 2*3 = 16, u3: 10 + 1*2 = 12
	req.Equal("u2", ranked[0].User.ID)
	req.Equal(26, ranked[0].TotalScore)
	req.Equal("u1", ranked[1].User.ID)
	req.Equal(16, ranked[1].TotalScore)
	req.Equal("u3", ranked[2].User.ID)
	req.Equal(12, ranked[2].TotalScore)
}

func TestLeaderboardCapsAtFive(t *testing.T) {
	req := require.New(t)

	var users []domain.User
	for i := 0; i < 8; i++ {
		users = append(users, domain.User{ID: fmt.Sprintf("u%d", i)})
	}

	ranked := Leaderboard(users, nil)
	req.Len(ranked, 5)
}

func TestLeaderboardUnknownDomainCountsForOne(t *testing.T) {
	ranked := Leaderboard([]domain.User{
		{ID: "u1", Domains: []string{"Quantum Basket Weaving"}},
	}, nil)

	require.Equal(t, 1, ranked[0].DomainExpertise)
	require.Equal(t, 2, ranked[0].TotalScore)
}
