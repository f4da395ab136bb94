package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	// List returns all announcements, newest first.
	List(ctx context.Context) ([]*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
