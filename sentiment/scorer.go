// Package sentiment scores meeting feedback. Three independent signals
// (star rating, connection quality, comment wording) are each mapped
// into [0,1] and averaged; the blend feeds the summary line shown to
// organizers.
package sentiment

import (
	"strings"

	"alumnihub/domain"
)

var positiveWords = map[string]struct{}{
	"awesome": {}, "great": {}, "fantastic": {}, "love": {}, "super": {},
	"cool": {}, "amazing": {}, "happy": {}, "excellent": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "awful": {}, "terrible": {}, "hate": {}, "trash": {},
	"horrible": {}, "disgusting": {}, "worst": {},
}

const neutral = 0.5

// Score blends the three signals into a report.
func Score(rating int, quality domain.ConnectionQuality, comments string) domain.SentimentReport {
	numerical := float64(rating) / 5
	qualityScore := scoreQuality(quality)
	text := scoreText(comments)

	overall := (numerical + qualityScore + text) / 3
	return domain.SentimentReport{
		Overall:   overall,
		Numerical: numerical,
		Text:      text,
		Quality:   qualityScore,
		Summary:   summarize(overall),
	}
}

func scoreQuality(q domain.ConnectionQuality) float64 {
	switch q {
	case domain.QualityExcellent:
		return 1
	case domain.QualityGood:
		return 0.75
	case domain.QualityFair:
		return 0.5
	case domain.QualityPoor:
		return 0.25
	default:
		return neutral
	}
}

// scoreText counts exact whole-token hits against the word lists.
// "greatest" scores nothing even though it contains "great"; stemming
// would change historical scores, so tokens match exactly. Only listed
// words enter the denominator, so filler never dilutes the signal; a
// comment with no listed word at all is neutral.
func scoreText(comments string) float64 {
	score := 0.0
	matched := 0
	for _, tok := range strings.Fields(strings.ToLower(comments)) {
		if _, ok := positiveWords[tok]; ok {
			score++
			matched++
		} else if _, ok := negativeWords[tok]; ok {
			score--
			matched++
		}
	}
	if matched == 0 {
		return neutral
	}
	return (score/float64(matched) + 1) / 2
}

func summarize(overall float64) string {
	switch {
	case overall >= 0.8:
		return "Extremely positive feedback!"
	case overall >= 0.6:
		return "Generally positive feedback"
	case overall >= 0.4:
		return "Neutral feedback"
	case overall >= 0.2:
		return "Somewhat negative feedback"
	default:
		return "Very negative feedback"
	}
}
