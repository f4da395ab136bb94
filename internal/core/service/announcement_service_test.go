package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/domain"
)

type stubAnnouncementRepo struct {
	items  []*domain.Announcement
	nextID int
}

func (r *stubAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	r.nextID++
	created := *a
	created.ID = fmt.Sprintf("announcement_%d", r.nextID)
	// Newest first, matching the persistence layer's sort order.
	r.items = append([]*domain.Announcement{&created}, r.items...)
	clone := created
	return &clone, nil
}

func (r *stubAnnouncementRepo) List(_ context.Context) ([]*domain.Announcement, error) {
	out := make([]*domain.Announcement, 0, len(r.items))
	for _, a := range r.items {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrAnnouncementNotFound
}

func TestAnnouncementService_CreateAndList(t *testing.T) {
	repo := &stubAnnouncementRepo{}
	svc := NewAnnouncementService(repo, zerolog.Nop())

	first, err := svc.Create(context.Background(), "faculty_1", "Midterm", "Reviews start Monday")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.CreatedBy != "faculty_1" {
		t.Fatalf("author not recorded: %+v", first)
	}

	if _, err := svc.Create(context.Background(), "faculty_1", "Finals", "Submit by Friday"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Finals" {
		t.Fatalf("expected newest first, got %+v", all)
	}
}

func TestAnnouncementService_Create_Validation(t *testing.T) {
	svc := NewAnnouncementService(&stubAnnouncementRepo{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "faculty_1", "", "body"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty title, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "faculty_1", "title", ""); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty body, got %v", err)
	}
}

func TestAnnouncementService_Delete(t *testing.T) {
	repo := &stubAnnouncementRepo{}
	svc := NewAnnouncementService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), "faculty_1", "Old news", "body")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != domain.ErrAnnouncementNotFound {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}
