package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// ProjectRepository defines persistence operations for project ideas.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.ProjectIdea) (*domain.ProjectIdea, error)
	FindByID(ctx context.Context, id string) (*domain.ProjectIdea, error)
	// FindApprovedByStudent returns the student's approved project, or
	// domain.ErrProjectNotFound when none exists.
	FindApprovedByStudent(ctx context.Context, studentID string) (*domain.ProjectIdea, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.ProjectIdea, error)
	ListAll(ctx context.Context) ([]*domain.ProjectIdea, error)
	// Update replaces the mutable fields of the stored document with those
	// of p (full feature sequence replacement included).
	Update(ctx context.Context, p *domain.ProjectIdea) error
	Delete(ctx context.Context, id string) error
	// SetFeatureCompleted flips one feature's completed flag in place,
	// leaving sibling features untouched.
	SetFeatureCompleted(ctx context.Context, id string, index int, completed bool) error
}
