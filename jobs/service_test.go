package jobs

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/store"
)

type fakeIdentity struct {
	user *domain.CurrentUser
}

func (f *fakeIdentity) CurrentUser() *domain.CurrentUser {
	return f.user
}

func newTestService(t *testing.T, userID string) *Service {
	t.Helper()
	s, err := store.NewBadgerStore(t.TempDir(), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	index, err := NewSearchIndex(t.TempDir(), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	identity := &fakeIdentity{}
	if userID != "" {
		identity.user = &domain.CurrentUser{ID: userID, Email: userID + "@campus.edu"}
	}
	return NewService(s, identity, index, slog.Default())
}

func TestPostAndList(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t, "alice")

	job, err := svc.Post(domain.Job{
		Title:       "Backend Engineer",
		Company:     "Initech",
		Description: "Go services",
		Location:    "Remote",
	})
	req.NoError(err)
	req.NotEmpty(job.ID)
	req.Equal("alice", job.PostedBy)

	_, err = svc.Post(domain.Job{Title: "Data Analyst", Company: "Umbrella"})
	req.NoError(err)

	list, err := svc.List()
	req.NoError(err)
	req.Len(list, 2)
	req.Equal("Data Analyst", list[0].Title) // newest first
}

func TestPostRequiresIdentityAndTitle(t *testing.T) {
	req := require.New(t)

	anon := newTestService(t, "")
	_, err := anon.Post(domain.Job{Title: "x"})
	req.ErrorIs(err, errors.ErrNotAuthenticated)

	svc := newTestService(t, "alice")
	_, err = svc.Post(domain.Job{Title: "  "})
	req.Error(err)
}

func TestSearchFindsByAnyField(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t, "alice")

	posted, err := svc.Post(domain.Job{
		Title:       "Platform Engineer",
		Company:     "Initech",
		Description: "kubernetes and badger tuning",
		Location:    "Lyon",
	})
	req.NoError(err)
	_, err = svc.Post(domain.Job{Title: "Accountant", Company: "Hooli"})
	req.NoError(err)

	ctx := context.Background()

	byTitle, err := svc.Search(ctx, "platform", 10)
	req.NoError(err)
	req.Len(byTitle, 1)
	req.Equal(posted.ID, byTitle[0].ID)

	byDescription, err := svc.Search(ctx, "kubernetes", 10)
	req.NoError(err)
	req.Len(byDescription, 1)

	none, err := svc.Search(ctx, "astronaut", 10)
	req.NoError(err)
	req.Empty(none)
}

func TestDeleteRemovesPostingAndIndexEntry(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t, "alice")

	job, err := svc.Post(domain.Job{Title: "Platform Engineer", Company: "Initech"})
	req.NoError(err)

	req.NoError(svc.Delete(job.ID))

	_, err = svc.Get(job.ID)
	req.ErrorIs(err, errors.ErrNotFound)

	found, err := svc.Search(context.Background(), "platform", 10)
	req.NoError(err)
	req.Empty(found)
}

func TestApply(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t, "alice")

	job, err := svc.Post(domain.Job{Title: "Backend Engineer", Company: "Initech"})
	req.NoError(err)

	app, err := svc.Apply(job.ID, "I know Go")
	req.NoError(err)
	req.Equal(domain.ApplicationPending, app.Status)
	req.Equal("alice", app.UserID)

	apps, err := svc.Applications()
	req.NoError(err)
	req.Len(apps, 1)
	req.Equal(job.ID, apps[0].JobID)

	_, err = svc.Apply("missing-job", "")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestApplicationCounts(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t, "alice")

	first, err := svc.Post(domain.Job{Title: "Backend Engineer", Company: "Initech"})
	req.NoError(err)
	second, err := svc.Post(domain.Job{Title: "Data Analyst", Company: "Umbrella"})
	req.NoError(err)

	_, err = svc.Apply(first.ID, "")
	req.NoError(err)
	_, err = svc.Apply(first.ID, "")
	req.NoError(err)
	_, err = svc.Apply(second.ID, "")
	req.NoError(err)

	counts, err := svc.ApplicationCounts()
	req.NoError(err)
	req.Equal(2, counts[first.ID])
	req.Equal(1, counts[second.ID])
}

func TestReindexAllRestoresSearch(t *testing.T) {
	req := require.New(t)

	s, err := store.NewBadgerStore(t.TempDir(), slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = s.Close() })
	identity := &fakeIdentity{user: &domain.CurrentUser{ID: "alice", Email: "alice@campus.edu"}}

	firstIndex, err := NewSearchIndex(t.TempDir(), slog.Default())
	req.NoError(err)
	svc := NewService(s, identity, firstIndex, slog.Default())
	_, err = svc.Post(domain.Job{Title: "Platform Engineer", Company: "Initech"})
	req.NoError(err)
	req.NoError(firstIndex.Close())

	// A fresh empty index finds nothing until the rebuild runs.
	secondIndex, err := NewSearchIndex(t.TempDir(), slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = secondIndex.Close() })
	svc = NewService(s, identity, secondIndex, slog.Default())

	found, err := svc.Search(context.Background(), "platform", 10)
	req.NoError(err)
	req.Empty(found)

	req.NoError(svc.ReindexAll())
	found, err = svc.Search(context.Background(), "platform", 10)
	req.NoError(err)
	req.Len(found, 1)
}
