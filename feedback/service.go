// Package feedback stores meeting feedback and aggregates it for
// organizers.
package feedback

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/sentiment"
	"alumnihub/store"
)

// Stats is the aggregate view over all stored feedback. Shares are
// fractions of the total, split on overall sentiment.
type Stats struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
	PositiveShare float64 `json:"positiveShare"`
	NeutralShare  float64 `json:"neutralShare"`
	NegativeShare float64 `json:"negativeShare"`
}

type Service struct {
	store  store.IStore
	logger *slog.Logger
}

func NewService(s store.IStore, logger *slog.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// Submit scores the submission and persists it. The sentiment is
// computed once at write time and stored with the entry, so later
// changes to the scorer never rewrite history.
func (s *Service) Submit(meetingID string, rating int, quality domain.ConnectionQuality, comments string) (domain.FeedbackEntry, error) {
	if rating < 1 || rating > 5 {
		return domain.FeedbackEntry{}, errors.ErrInvalidRating
	}
	if quality == "" {
		return domain.FeedbackEntry{}, errors.ErrMissingQuality
	}

	entry := domain.FeedbackEntry{
		MeetingID: meetingID,
		Rating:    rating,
		Quality:   quality,
		Comments:  comments,
		Sentiment: sentiment.Score(rating, quality, comments),
		Timestamp: domain.Timestamp(time.Now()),
	}

	path, err := s.store.Append("meetingFeedback", entry)
	if err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("storing feedback: %w", err)
	}
	entry.ID = path[strings.LastIndex(path, "/")+1:]

	s.logger.Info("feedback stored",
		slog.String("meetingID", meetingID),
		slog.String("summary", entry.Sentiment.Summary))
	return entry, nil
}

// List returns all feedback, newest first.
func (s *Service) List() ([]domain.FeedbackEntry, error) {
	snap, err := s.store.Read("meetingFeedback")
	if err != nil {
		return nil, err
	}
	return s.decode(snap), nil
}

// Subscribe streams the list, newest first, on every change.
func (s *Service) Subscribe(fn func([]domain.FeedbackEntry)) (func(), error) {
	return s.store.Subscribe("meetingFeedback", func(snap store.Snapshot) {
		fn(s.decode(snap))
	})
}

// Delete removes a single entry.
func (s *Service) Delete(id string) error {
	return s.store.Delete("meetingFeedback/" + id)
}

// Clear removes every entry at once.
func (s *Service) Clear() error {
	return s.store.Delete("meetingFeedback")
}

// ComputeStats aggregates the current entries. An empty store yields
// the zero Stats rather than an error.
func (s *Service) ComputeStats() (Stats, error) {
	entries, err := s.List()
	if err != nil {
		return Stats{}, err
	}
	if len(entries) == 0 {
		return Stats{}, nil
	}

	total := float64(len(entries))
	ratingSum := lo.SumBy(entries, func(e domain.FeedbackEntry) float64 {
		return float64(e.Rating)
	})
	positive := lo.CountBy(entries, func(e domain.FeedbackEntry) bool {
		return e.Sentiment.Overall >= 0.6
	})
	neutralOrBetter := lo.CountBy(entries, func(e domain.FeedbackEntry) bool {
		return e.Sentiment.Overall >= 0.4
	})

	return Stats{
		Count:         len(entries),
		AverageRating: ratingSum / total,
		PositiveShare: float64(positive) / total,
		NeutralShare:  float64(neutralOrBetter-positive) / total,
		NegativeShare: float64(len(entries)-neutralOrBetter) / total,
	}, nil
}

func (s *Service) decode(snap store.Snapshot) []domain.FeedbackEntry {
	entries := make([]domain.FeedbackEntry, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var fe domain.FeedbackEntry
		if err := json.Unmarshal(e.Value, &fe); err != nil {
			s.logger.Error("skipping unreadable feedback",
				slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		fe.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
		entries = append(entries, fe)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return domain.ParseTimestamp(entries[i].Timestamp).
			After(domain.ParseTimestamp(entries[j].Timestamp))
	})
	return entries
}
