package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// AnnouncementService implements the announcement board.
type AnnouncementService struct {
	announcements ports.AnnouncementRepository
	log           zerolog.Logger
}

func NewAnnouncementService(announcements ports.AnnouncementRepository, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, log: log}
}

func (s *AnnouncementService) List(ctx context.Context) ([]*domain.Announcement, error) {
	return s.announcements.List(ctx)
}

func (s *AnnouncementService) Create(ctx context.Context, actorID, title, body string) (*domain.Announcement, error) {
	if title == "" || body == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	created, err := s.announcements.Create(ctx, &domain.Announcement{
		Title:     title,
		Body:      body,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("announcement_id", created.ID).Str("created_by", actorID).Msg("announcement created")
	return created, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	return s.announcements.Delete(ctx, id)
}
