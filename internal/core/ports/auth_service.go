package ports

import (
	"context"
	"time"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// Credential is an issued session token plus the metadata needed to
// deliver and later revoke it.
type Credential struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed session credentials binding a
// request to a user id. Verification is stateless; revocation lives in
// the SessionStore.
type TokenCodec interface {
	Issue(userID string) (*Credential, error)
	// Verify returns the user id and token id encoded in token, or
	// domain.ErrInvalidToken for tampered or malformed input.
	Verify(token string) (userID, tokenID string, expiresAt time.Time, err error)
}

// SessionStore tracks revoked session tokens (logout).
type SessionStore interface {
	// Revoke marks tokenID unusable until its natural expiry.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SignupInput carries the fields accepted at account creation. Role is
// not part of the input: signup always creates a student.
type SignupInput struct {
	Name      string
	Email     string
	Password  string
	StudentID string
}

// AuthService implements account and session operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, *Credential, error)
	Login(ctx context.Context, email, password string) (*domain.User, *Credential, error)
	// Logout revokes the given token server-side. A malformed token is
	// not an error; there is simply nothing to revoke.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
