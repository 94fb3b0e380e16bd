package domain

// ConnectionQuality is the self-reported link quality of a meeting.
type ConnectionQuality string

const (
	QualityExcellent ConnectionQuality = "excellent"
	QualityGood      ConnectionQuality = "good"
	QualityFair      ConnectionQuality = "fair"
	QualityPoor      ConnectionQuality = "poor"
)

// SentimentReport is the scored view of one feedback submission.
// All four scores are in [0,1].
type SentimentReport struct {
	Overall   float64 `json:"overall_sentiment"`
	Numerical float64 `json:"numerical_sentiment"`
	Text      float64 `json:"text_sentiment"`
	Quality   float64 `json:"quality_sentiment"`
	Summary   string  `json:"summary"`
}

// FeedbackEntry is stored at meetingFeedback/{push}. Immutable after
// creation; deletable individually or in bulk.
type FeedbackEntry struct {
	ID        string            `json:"-"`
	MeetingID string            `json:"meetingId"`
	Rating    int               `json:"rating"`
	Quality   ConnectionQuality `json:"quality"`
	Comments  string            `json:"comments"`
	Sentiment SentimentReport   `json:"sentiment"`
	Timestamp string            `json:"timestamp"`
}
