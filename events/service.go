// Package events manages campus event announcements.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/session"
	"alumnihub/store"
)

type Service struct {
	store    store.IStore
	identity session.UserSource
	logger   *slog.Logger
}

func NewService(s store.IStore, identity session.UserSource, logger *slog.Logger) *Service {
	return &Service{store: s, identity: identity, logger: logger}
}

// Create announces an event.
func (s *Service) Create(event domain.CampusEvent) (domain.CampusEvent, error) {
	me := s.identity.CurrentUser()
	if me == nil {
		return domain.CampusEvent{}, errors.ErrNotAuthenticated
	}
	if strings.TrimSpace(event.Name) == "" {
		return domain.CampusEvent{}, fmt.Errorf("event without name")
	}

	event.CreatedBy = me.ID
	event.CreatedAt = domain.Timestamp(time.Now())

	path, err := s.store.Append("events", event)
	if err != nil {
		return domain.CampusEvent{}, fmt.Errorf("storing event: %w", err)
	}
	event.ID = path[strings.LastIndex(path, "/")+1:]
	s.logger.Info("event announced", slog.String("eventID", event.ID), slog.String("name", event.Name))
	return event, nil
}

// List returns every event sorted by its scheduled date, soonest
// first. Dates compare as strings; they are stored in YYYY-MM-DD form.
func (s *Service) List() ([]domain.CampusEvent, error) {
	snap, err := s.store.Read("events")
	if err != nil {
		return nil, err
	}
	return s.decode(snap), nil
}

// Subscribe streams the event list on every change.
func (s *Service) Subscribe(fn func([]domain.CampusEvent)) (func(), error) {
	return s.store.Subscribe("events", func(snap store.Snapshot) {
		fn(s.decode(snap))
	})
}

func (s *Service) Delete(id string) error {
	return s.store.Delete("events/" + id)
}

func (s *Service) decode(snap store.Snapshot) []domain.CampusEvent {
	events := make([]domain.CampusEvent, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var ev domain.CampusEvent
		if err := json.Unmarshal(e.Value, &ev); err != nil {
			s.logger.Error("skipping unreadable event", slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		ev.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}
