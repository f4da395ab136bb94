package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// ProfilePatch carries the mutable profile fields. Nil pointers mean
// "leave unchanged". StudentID is only applied to student accounts.
type ProfilePatch struct {
	Name      *string
	Email     *string
	StudentID *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// email is already taken (unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids, keyed by id. Missing ids
	// are simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// SearchStudents returns students whose name or student ID contains
	// query, case-insensitively.
	SearchStudents(ctx context.Context, query string) ([]*domain.User, error)
	FindFirstByRole(ctx context.Context, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
