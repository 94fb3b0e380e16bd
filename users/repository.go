//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_user_repository.go -package=mocks
package users

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/store"
)

type IRepository interface {
	CreateAccount(email, passwordHash string, profile domain.User) (string, error)
	GetCredentials(email string) (Credentials, error)
	SaveProfile(profile domain.User) error
	GetProfile(id string) (domain.User, error)
	ListProfiles() ([]domain.User, error)
}

// Credentials is the secret half of an account, kept under
// credentials/{email} and never mixed into the public profile.
type Credentials struct {
	UserID       string   `json:"userId"`
	PasswordHash string   `json:"passwordHash"`
	Roles        []string `json:"roles"`
	CreatedAt    int64    `json:"createdAt"`
}

type Repository struct {
	store store.IStore

	// guards the read-then-write uniqueness check in CreateAccount
	mu sync.Mutex
}

func NewRepository(s store.IStore) *Repository {
	return &Repository{store: s}
}

// CreateAccount persists credentials and the initial profile. The email
// is the uniqueness key; a second registration with it fails with
// ErrUserAlreadyExists.
func (r *Repository) CreateAccount(email, passwordHash string, profile domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	credPath := "credentials/" + email
	snap, err := r.store.Read(credPath)
	if err != nil {
		return "", err
	}
	if snap.Exists() {
		return "", errors.ErrUserAlreadyExists
	}

	id := uuid.New().String()
	creds := Credentials{
		UserID:       id,
		PasswordHash: passwordHash,
		Roles:        []string{"user"},
		CreatedAt:    time.Now().Unix(),
	}
	if err := r.store.Write(credPath, creds); err != nil {
		return "", err
	}

	now := domain.Timestamp(time.Now())
	profile.ID = id
	profile.Email = email
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := r.store.Write("users/"+id, profile); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetCredentials(email string) (Credentials, error) {
	snap, err := r.store.Read("credentials/" + email)
	if err != nil {
		return Credentials{}, err
	}
	if !snap.Exists() {
		return Credentials{}, errors.ErrNotFound
	}

	var creds Credentials
	if err := json.Unmarshal(snap.Leaf(), &creds); err != nil {
		return Credentials{}, fmt.Errorf("decoding credentials: %w", err)
	}
	return creds, nil
}

// SaveProfile overwrites the profile at users/{id}, refreshing the
// update stamp. Profiles are never deleted.
func (r *Repository) SaveProfile(profile domain.User) error {
	if profile.ID == "" {
		return fmt.Errorf("profile without id")
	}
	profile.UpdatedAt = domain.Timestamp(time.Now())
	return r.store.Write("users/"+profile.ID, profile)
}

func (r *Repository) GetProfile(id string) (domain.User, error) {
	snap, err := r.store.Read("users/" + id)
	if err != nil {
		return domain.User{}, err
	}
	if !snap.Exists() {
		return domain.User{}, errors.ErrNotFound
	}

	var u domain.User
	if err := json.Unmarshal(snap.Leaf(), &u); err != nil {
		return domain.User{}, fmt.Errorf("decoding profile %s: %w", id, err)
	}
	return u, nil
}

func (r *Repository) ListProfiles() ([]domain.User, error) {
	snap, err := r.store.Read("users")
	if err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var u domain.User
		if err := json.Unmarshal(e.Value, &u); err != nil {
			return nil, fmt.Errorf("decoding profile at %s: %w", e.Path, err)
		}
		out = append(out, u)
	}
	return out, nil
}
