package session

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/mocks"
	"alumnihub/users"
)

func newTestManager(t *testing.T) (*Manager, *mocks.MockIRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIRepository(ctrl)
	issuer := NewTokenIssuer("test_secret_key_for_sessions", 24*time.Hour)
	return NewManager(mockRepo, issuer, slog.Default()), mockRepo
}

func TestManager_Register(t *testing.T) {
	mgr, mockRepo := newTestManager(t)

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		email := "test@example.com"
		password := "ComplexPass123!"
		expectedUserID := "user-uuid"

		// Expect CreateAccount to receive a hashed password, not the plain one
		mockRepo.EXPECT().
			CreateAccount(email, gomock.Not(password), gomock.Any()).
			Return(expectedUserID, nil).
			Times(1)

		token, err := mgr.Register(RegisterRequest{
			Email: email, Password: password, Name: "Test", UserType: "student",
		}, domain.User{})

		req.NoError(err)
		req.NotEmpty(token)

		// Registration signs the user in.
		current := mgr.CurrentUser()
		req.NotNil(current)
		req.Equal(expectedUserID, current.ID)
		req.Equal(email, current.Email)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)

		// Repository should NEVER be called
		mockRepo.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		token, err := mgr.Register(RegisterRequest{
			Email: "test@example.com", Password: "simplesimplesimple",
			Name: "Test", UserType: "student",
		}, domain.User{})

		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should fail on unknown user type", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := mgr.Register(RegisterRequest{
			Email: "test@example.com", Password: "ComplexPass123!",
			Name: "Test", UserType: "visitor",
		}, domain.User{})

		req.Error(err)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			CreateAccount("duplicate@example.com", gomock.Any(), gomock.Any()).
			Return("", errors.ErrUserAlreadyExists).
			Times(1)

		_, err := mgr.Register(RegisterRequest{
			Email: "duplicate@example.com", Password: "ComplexPass123!",
			Name: "Test", UserType: "alumni",
		}, domain.User{})

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestManager_Login(t *testing.T) {
	mgr, mockRepo := newTestManager(t)

	t.Run("should login successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"
		password := "Secret123456!"

		hashedPassword, _ := HashPassword(password)
		stored := users.Credentials{
			UserID:       "uuid-123",
			PasswordHash: hashedPassword,
			Roles:        []string{"user"},
		}

		mockRepo.EXPECT().
			GetCredentials(email).
			Return(stored, nil).
			Times(1)

		token, err := mgr.Login(email, password)

		req.NoError(err)
		req.NotEmpty(token)

		claims, err := mgr.issuer.Validate(string(token))
		req.NoError(err)
		req.Equal(stored.UserID, claims.UserID)

		current := mgr.CurrentUser()
		req.NotNil(current)
		req.Equal("uuid-123", current.ID)
	})

	t.Run("should return invalid credentials when password matches nothing", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"

		hashedPassword, _ := HashPassword("CorrectPassword123!")
		stored := users.Credentials{PasswordHash: hashedPassword}

		mockRepo.EXPECT().
			GetCredentials(email).
			Return(stored, nil).
			Times(1)

		_, err := mgr.Login(email, "WrongPassword123!")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should return invalid credentials when user is not found", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetCredentials("unknown@example.com").
			Return(users.Credentials{}, errors.ErrNotFound).
			Times(1)

		_, err := mgr.Login("unknown@example.com", "anyPassword")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}

func TestManager_ResumeAndLogout(t *testing.T) {
	req := require.New(t)
	mgr, mockRepo := newTestManager(t)

	token, err := mgr.issuer.Generate("uuid-123", []string{"user"})
	req.NoError(err)

	mockRepo.EXPECT().
		GetProfile("uuid-123").
		Return(domain.User{ID: "uuid-123", Email: "user@example.com"}, nil).
		Times(1)

	req.NoError(mgr.Resume(Token(token)))
	current := mgr.CurrentUser()
	req.NotNil(current)
	req.Equal("user@example.com", current.Email)

	mgr.Logout()
	req.Nil(mgr.CurrentUser())

	// A garbage token never reaches the repository.
	req.ErrorIs(mgr.Resume("not-a-token"), errors.ErrInvalidCredentials)
}
