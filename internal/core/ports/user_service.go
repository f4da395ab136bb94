package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// UpdateProfileInput carries an identity-scoped profile update. The acting
// user's role decides whether StudentID is applied.
type UpdateProfileInput struct {
	UserID    string
	Role      string
	Name      *string
	Email     *string
	StudentID *string
}

// UserService implements profile and directory operations.
type UserService interface {
	// SearchStudents finds students by name or student ID substring.
	// An empty query fails with domain.ErrValidation.
	SearchStudents(ctx context.Context, query string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
}
