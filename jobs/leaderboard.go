package jobs

import (
	"sort"

	"github.com/samber/lo"

	"alumnihub/domain"
)

const leaderboardSize = 5

// domainWeights favors the fields with the highest placement demand;
// unknown domain names still count for one.
var domainWeights = map[string]int{
	"AI":              5,
	"Web Development": 4,
	"Data Science":    4,
	"Cloud Computing": 3,
	"Systems Design":  3,
}

// RankedUser is one leaderboard row.
type RankedUser struct {
	User             domain.User
	ApplicationCount int
	DomainExpertise  int
	SkillCount       int
	TotalScore       int
}

// Leaderboard ranks users by engagement: applications weigh heaviest,
// then declared skills, then domain expertise. Top five only.
func Leaderboard(users []domain.User, apps []domain.JobApplication) []RankedUser {
	appCounts := lo.CountValuesBy(apps, func(a domain.JobApplication) string {
		return a.UserID
	})

	ranked := lo.Map(users, func(u domain.User, _ int) RankedUser {
		expertise := 0
		for _, d := range u.Domains {
			expertise += domainWeight(d)
		}
		row := RankedUser{
			User:             u,
			ApplicationCount: appCounts[u.ID],
			DomainExpertise:  expertise,
			SkillCount:       len(u.Skills),
		}
		row.TotalScore = row.ApplicationCount*10 + row.DomainExpertise*2 + row.SkillCount*3
		return row
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}
	return ranked
}

func domainWeight(name string) int {
	if w, ok := domainWeights[name]; ok {
		return w
	}
	return 1
}
