package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// AnnouncementService implements the announcement board: list for
// everyone, create/delete for faculty.
type AnnouncementService interface {
	List(ctx context.Context) ([]*domain.Announcement, error)
	Create(ctx context.Context, actorID, title, body string) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
