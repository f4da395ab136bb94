package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// AuthService implements signup, login, logout, and password changes.
type AuthService struct {
	users    ports.UserRepository
	codec    ports.TokenCodec
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec ports.TokenCodec, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, sessions: sessions, log: log}
}

// Signup creates a student account and issues a session credential.
// Faculty accounts are provisioned by the seed command, never here.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, *ports.Credential, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		StudentID:    in.StudentID,
		Role:         domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	cred, err := s.codec.Issue(created.ID)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("student signed up")
	return created, cred, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *ports.Credential, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	cred, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return user, cred, nil
}

// Logout revokes the token's session id until the token would have
// expired anyway. Malformed tokens are ignored: the cookie is cleared by
// the handler either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, tokenID, expiresAt, err := s.codec.Verify(token)
	if err != nil || tokenID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.log.Warn().Err(err).Msg("session revocation failed, cookie-clear only")
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
