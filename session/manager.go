// Package session owns accounts and the signed-in identity. Features
// never reach into a global to learn who is acting; they receive a
// UserSource and ask it.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/users"
)

// UserSource yields the acting identity, or nil when signed out.
type UserSource interface {
	CurrentUser() *domain.CurrentUser
}

type Token string

type IManager interface {
	UserSource
	Register(req RegisterRequest, profile domain.User) (Token, error)
	Login(email, password string) (Token, error)
	Resume(token Token) error
	Logout()
}

// Manager is the single mutable identity slot of the process, plus the
// register/login flows around it.
type Manager struct {
	repo   users.IRepository
	issuer *TokenIssuer
	logger *slog.Logger

	mu      sync.RWMutex
	current *domain.CurrentUser
}

func NewManager(repo users.IRepository, issuer *TokenIssuer, logger *slog.Logger) *Manager {
	return &Manager{repo: repo, issuer: issuer, logger: logger}
}

// CurrentUser returns a copy of the signed-in identity, nil if none.
func (m *Manager) CurrentUser() *domain.CurrentUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return lo.ToPtr(*m.current)
}

func (m *Manager) Register(req RegisterRequest, profile domain.User) (Token, error) {
	// 1. Validate business rules before any expensive cryptographic work.
	if err := ValidateRegister(req); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password here so the repository never sees it in plain.
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist credentials and the initial profile.
	profile.Name = req.Name
	profile.UserType = domain.Role(req.UserType)
	userID, err := m.repo.CreateAccount(req.Email, hashedPassword, profile)
	if err != nil {
		return "", err // propagates ErrUserAlreadyExists when the email is taken
	}

	// 4. Issue the first session token and sign the user in.
	token, err := m.issuer.Generate(userID, []string{"user"})
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	m.setCurrent(userID, req.Email)
	m.logger.Info("user registered", slog.String("userID", userID))
	return Token(token), nil
}

func (m *Manager) Login(email, password string) (Token, error) {
	// 1. Look the account up by email.
	creds, err := m.repo.GetCredentials(email)
	if err != nil {
		// Generic error to prevent user enumeration.
		return "", errors.ErrInvalidCredentials
	}

	// 2. Compare the password against the stored hash.
	match, err := ComparePassword(password, creds.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	// 3. Issue the token and flip the identity slot.
	token, err := m.issuer.Generate(creds.UserID, creds.Roles)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	m.setCurrent(creds.UserID, email)
	m.logger.Info("user signed in", slog.String("userID", creds.UserID))
	return Token(token), nil
}

// Resume restores the identity slot from a previously issued token,
// the in-process equivalent of an auth-state listener firing on start.
func (m *Manager) Resume(token Token) error {
	claims, err := m.issuer.Validate(string(token))
	if err != nil {
		return errors.ErrInvalidCredentials
	}

	profile, err := m.repo.GetProfile(claims.UserID)
	if err != nil {
		return err
	}

	m.setCurrent(profile.ID, profile.Email)
	return nil
}

func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

func (m *Manager) setCurrent(id, email string) {
	m.mu.Lock()
	m.current = &domain.CurrentUser{ID: id, Email: email}
	m.mu.Unlock()
}
