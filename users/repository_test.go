package users

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/store"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	s, err := store.NewBadgerStore(t.TempDir(), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewRepository(s)
}

func TestCreateAccountAndFetch(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	id, err := repo.CreateAccount("alice@campus.edu", "hashed", domain.User{
		Name:     "Alice",
		UserType: domain.RoleStudent,
	})
	req.NoError(err)
	req.NotEmpty(id)

	creds, err := repo.GetCredentials("alice@campus.edu")
	req.NoError(err)
	req.Equal(id, creds.UserID)
	req.Equal("hashed", creds.PasswordHash)

	profile, err := repo.GetProfile(id)
	req.NoError(err)
	req.Equal("Alice", profile.Name)
	req.Equal("alice@campus.edu", profile.Email)
	req.Equal(domain.RoleStudent, profile.UserType)
	req.NotEmpty(profile.CreatedAt)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	_, err := repo.CreateAccount("alice@campus.edu", "h1", domain.User{Name: "Alice"})
	req.NoError(err)

	_, err = repo.CreateAccount("alice@campus.edu", "h2", domain.User{Name: "Impostor"})
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestSaveProfileRefreshesUpdateStamp(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	id, err := repo.CreateAccount("alice@campus.edu", "h", domain.User{Name: "Alice"})
	req.NoError(err)

	profile, err := repo.GetProfile(id)
	req.NoError(err)

	profile.Company = "Initech"
	req.NoError(repo.SaveProfile(profile))

	updated, err := repo.GetProfile(id)
	req.NoError(err)
	req.Equal("Initech", updated.Company)
	req.Equal(profile.CreatedAt, updated.CreatedAt)

	req.Error(repo.SaveProfile(domain.User{Name: "no id"}))
}

func TestGetProfileNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetProfile("missing")
	require.ErrorIs(t, err, errors.ErrNotFound)

	_, err = repo.GetCredentials("missing@campus.edu")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestListProfiles(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	_, err := repo.CreateAccount("a@campus.edu", "h", domain.User{Name: "A"})
	req.NoError(err)
	_, err = repo.CreateAccount("b@campus.edu", "h", domain.User{Name: "B"})
	req.NoError(err)

	all, err := repo.ListProfiles()
	req.NoError(err)
	req.Len(all, 2)
}
