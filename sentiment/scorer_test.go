package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alumnihub/domain"
)

func TestScoreAllPositive(t *testing.T) {
	req := require.New(t)

	r := Score(5, domain.QualityExcellent, "awesome great fantastic")
	req.InDelta(1.0, r.Numerical, 1e-9)
	req.InDelta(1.0, r.Quality, 1e-9)
	req.InDelta(1.0, r.Text, 1e-9)
	req.InDelta(1.0, r.Overall, 1e-9)
	req.Equal("Extremely positive feedback!", r.Summary)
}

func TestScoreAllNegative(t *testing.T) {
	req := require.New(t)

	r := Score(1, domain.QualityPoor, "awful terrible worst")
	req.InDelta(0.2, r.Numerical, 1e-9)
	req.InDelta(0.25, r.Quality, 1e-9)
	req.InDelta(0.0, r.Text, 1e-9)
	req.InDelta(0.15, r.Overall, 1e-9)
	req.Equal("Very negative feedback", r.Summary)
}

func TestScoreEmptyCommentsAreNeutral(t *testing.T) {
	req := require.New(t)

	r := Score(3, domain.QualityFair, "   ")
	req.InDelta(0.5, r.Text, 1e-9)
	req.InDelta(0.5, r.Overall, 1e-9)
	req.Equal("Neutral feedback", r.Summary)
}

func TestScoreTextMatchesWholeTokensOnly(t *testing.T) {
	req := require.New(t)

	// "greatest" contains "great" but is not a hit.
	r := Score(3, domain.QualityFair, "the greatest meeting")
	req.InDelta(0.5, r.Text, 1e-9)

	// Case folds, punctuation does not: "great!" is its own token.
	// "meeting" is not listed, so the one hit carries the whole score.
	r = Score(3, domain.QualityFair, "GREAT meeting")
	req.InDelta(1.0, r.Text, 1e-9)
}

func TestScoreUnlistedWordsDoNotDilute(t *testing.T) {
	req := require.New(t)

	// Two hits among five tokens still score a full 1.0: only listed
	// words count toward the denominator.
	r := Score(5, domain.QualityExcellent, "this is great and amazing")
	req.InDelta(1.0, r.Text, 1e-9)
	req.InDelta(1.0, r.Overall, 1e-9)
	req.Equal("Extremely positive feedback!", r.Summary)

	r = Score(1, domain.QualityPoor, "this was terrible and awful")
	req.InDelta(0.0, r.Text, 1e-9)
	req.InDelta(0.15, r.Overall, 1e-9)
	req.Equal("Very negative feedback", r.Summary)
}

func TestScoreMixedComments(t *testing.T) {
	req := require.New(t)

	// one positive and one negative hit cancel out
	r := Score(4, domain.QualityGood, "great talk bad audio")
	req.InDelta(0.5, r.Text, 1e-9)
	req.InDelta((0.8+0.75+0.5)/3, r.Overall, 1e-9)
	req.Equal("Generally positive feedback", r.Summary)
}

func TestScoreUnknownQualityIsNeutral(t *testing.T) {
	r := Score(3, domain.ConnectionQuality("glorious"), "")
	require.InDelta(t, 0.5, r.Quality, 1e-9)
}

func TestSummaryThresholds(t *testing.T) {
	req := require.New(t)

	req.Equal("Extremely positive feedback!", summarize(0.8))
	req.Equal("Generally positive feedback", summarize(0.6))
	req.Equal("Neutral feedback", summarize(0.4))
	req.Equal("Somewhat negative feedback", summarize(0.2))
	req.Equal("Very negative feedback", summarize(0.19))
}
