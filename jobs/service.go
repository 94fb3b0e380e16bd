// Package jobs covers the postings board: alumni publish openings,
// students apply, and a leaderboard ranks the most active profiles.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/session"
	"alumnihub/store"
)

type Service struct {
	store    store.IStore
	identity session.UserSource
	index    *SearchIndex
	logger   *slog.Logger
}

func NewService(s store.IStore, identity session.UserSource,
	index *SearchIndex, logger *slog.Logger) *Service {
	return &Service{store: s, identity: identity, index: index, logger: logger}
}

// Post publishes an opening and indexes it for search.
func (s *Service) Post(job domain.Job) (domain.Job, error) {
	me := s.identity.CurrentUser()
	if me == nil {
		return domain.Job{}, errors.ErrNotAuthenticated
	}
	if strings.TrimSpace(job.Title) == "" {
		return domain.Job{}, fmt.Errorf("job without title")
	}

	job.PostedBy = me.ID
	job.PostedAt = domain.Timestamp(time.Now())

	path, err := s.store.Append("jobs", job)
	if err != nil {
		return domain.Job{}, fmt.Errorf("storing job: %w", err)
	}
	job.ID = path[strings.LastIndex(path, "/")+1:]

	if err := s.index.Index(job.ID, job.Title, job.Company, job.Description, job.Location); err != nil {
		// The posting exists even when indexing fails; ReindexAll on the
		// next start repairs the index.
		s.logger.Error("job indexing failed", slog.String("jobID", job.ID), slog.Any("error", err))
	}
	return job, nil
}

// List returns all postings, newest first.
func (s *Service) List() ([]domain.Job, error) {
	snap, err := s.store.Read("jobs")
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var j domain.Job
		if err := json.Unmarshal(e.Value, &j); err != nil {
			s.logger.Error("skipping unreadable job", slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		j.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
		jobs = append(jobs, j)
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return domain.ParseTimestamp(jobs[i].PostedAt).After(domain.ParseTimestamp(jobs[j].PostedAt))
	})
	return jobs, nil
}

// Get fetches one posting by id.
func (s *Service) Get(id string) (domain.Job, error) {
	snap, err := s.store.Read("jobs/" + id)
	if err != nil {
		return domain.Job{}, err
	}
	leaf := snap.Leaf()
	if leaf == nil {
		return domain.Job{}, errors.ErrNotFound
	}

	var j domain.Job
	if err := json.Unmarshal(leaf, &j); err != nil {
		return domain.Job{}, fmt.Errorf("decoding job %s: %w", id, err)
	}
	j.ID = id
	return j, nil
}

// Delete removes a posting and its index entry. Applications pointing
// at it are kept; they reference the id, not the record.
func (s *Service) Delete(id string) error {
	if err := s.store.Delete("jobs/" + id); err != nil {
		return err
	}
	if err := s.index.Remove(id); err != nil {
		s.logger.Error("deindexing failed", slog.String("jobID", id), slog.Any("error", err))
	}
	return nil
}

// Search finds postings by free text, best match first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Job, error) {
	ids, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		j, err := s.Get(id)
		if err == errors.ErrNotFound {
			continue // index briefly ahead of the store after a delete
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ReindexAll rebuilds the search index from the store.
func (s *Service) ReindexAll() error {
	jobs, err := s.List()
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if err := s.index.Index(j.ID, j.Title, j.Company, j.Description, j.Location); err != nil {
			return err
		}
	}
	s.logger.Info("job index rebuilt", slog.Int("jobs", len(jobs)))
	return nil
}

// Apply records one application with a pending status.
func (s *Service) Apply(jobID, coverLetter string) (domain.JobApplication, error) {
	me := s.identity.CurrentUser()
	if me == nil {
		return domain.JobApplication{}, errors.ErrNotAuthenticated
	}
	if _, err := s.Get(jobID); err != nil {
		return domain.JobApplication{}, err
	}

	app := domain.JobApplication{
		JobID:       jobID,
		UserID:      me.ID,
		CoverLetter: coverLetter,
		Status:      domain.ApplicationPending,
		Timestamp:   domain.Timestamp(time.Now()),
	}
	path, err := s.store.Append("jobApplications", app)
	if err != nil {
		return domain.JobApplication{}, fmt.Errorf("storing application: %w", err)
	}
	app.ID = path[strings.LastIndex(path, "/")+1:]
	return app, nil
}

// Applications returns every application, oldest first.
func (s *Service) Applications() ([]domain.JobApplication, error) {
	snap, err := s.store.Read("jobApplications")
	if err != nil {
		return nil, err
	}

	apps := make([]domain.JobApplication, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var a domain.JobApplication
		if err := json.Unmarshal(e.Value, &a); err != nil {
			s.logger.Error("skipping unreadable application", slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		a.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
		apps = append(apps, a)
	}
	return apps, nil
}

// ApplicationCounts returns how many applications each posting received.
func (s *Service) ApplicationCounts() (map[string]int, error) {
	apps, err := s.Applications()
	if err != nil {
		return nil, err
	}
	return lo.CountValuesBy(apps, func(a domain.JobApplication) string {
		return a.JobID
	}), nil
}
