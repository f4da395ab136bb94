package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// UserService implements the student directory and profile updates.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) SearchStudents(ctx context.Context, query string) ([]*domain.User, error) {
	if query == "" {
		return nil, domain.ErrValidation
	}
	return s.users.SearchStudents(ctx, query)
}

// UpdateProfile applies the caller's own profile changes. The student ID
// field only exists on student accounts; for faculty it is ignored.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	patch := ports.ProfilePatch{Name: in.Name, Email: in.Email}
	if in.Role == domain.RoleStudent {
		patch.StudentID = in.StudentID
	}

	updated, err := s.users.UpdateProfile(ctx, in.UserID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", in.UserID).Msg("profile updated")
	return updated, nil
}
