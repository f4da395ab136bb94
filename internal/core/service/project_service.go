package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

// ProjectService is the project lifecycle manager. Every mutation goes
// through here so the ownership and transition rules live in one place.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, log: log}
}

// Submit creates a new unapproved project idea. A student with an already
// approved project may not submit another until that one is gone.
func (s *ProjectService) Submit(ctx context.Context, in ports.SubmitProjectInput) (*domain.ProjectIdea, error) {
	if in.Title == "" || in.Description == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.projects.FindApprovedByStudent(ctx, in.StudentID); err == nil {
		return nil, domain.ErrDuplicateActiveProject
	} else if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.ProjectIdea{
		StudentID:   in.StudentID,
		Title:       in.Title,
		Description: in.Description,
		Features:    toFeatures(in.Features),
		Approved:    false,
		Marks:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", created.ID).Str("student_id", in.StudentID).Msg("project submitted")
	return created, nil
}

func (s *ProjectService) ListMine(ctx context.Context, studentID string) ([]*domain.ProjectIdea, error) {
	return s.projects.ListByStudent(ctx, studentID)
}

// ListAll returns every project enriched with the owning student's name,
// student ID, and email. Used by the faculty dashboard.
func (s *ProjectService) ListAll(ctx context.Context) ([]ports.ProjectWithStudent, error) {
	return s.listEnriched(ctx, true)
}

// ListFinalMarks returns every project with marks visible. Intentionally
// open to all authenticated roles; email is withheld from this view.
func (s *ProjectService) ListFinalMarks(ctx context.Context) ([]ports.ProjectWithStudent, error) {
	return s.listEnriched(ctx, false)
}

func (s *ProjectService) listEnriched(ctx context.Context, includeEmail bool) ([]ports.ProjectWithStudent, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.StudentID)
	}
	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProjectWithStudent, 0, len(projects))
	for _, p := range projects {
		item := ports.ProjectWithStudent{Project: p}
		if owner, ok := owners[p.StudentID]; ok {
			item.Student = ports.StudentSummary{
				ID:        owner.ID,
				Name:      owner.Name,
				StudentID: owner.StudentID,
			}
			if includeEmail {
				item.Student.Email = owner.Email
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// Update merges the patch into the caller's own project. Approval, marks,
// and feedback are untouchable from this path.
func (s *ProjectService) Update(ctx context.Context, in ports.UpdateProjectInput) (*domain.ProjectIdea, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(in.ActorID) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Features != nil {
		project.Features = toFeatures(in.Features)
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectID, actorID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.OwnedBy(actorID) {
		return domain.ErrForbidden
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.Info().Str("project_id", projectID).Str("student_id", actorID).Msg("project deleted by owner")
	return nil
}

// Approve records the faculty decision. Approval persists the flag;
// rejection deletes the record outright and is irreversible.
func (s *ProjectService) Approve(ctx context.Context, projectID string, approved bool) (*ports.ApprovalResult, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !approved {
		if err := s.projects.Delete(ctx, projectID); err != nil {
			return nil, fmt.Errorf("reject project: %w", err)
		}
		s.log.Info().Str("project_id", projectID).Str("student_id", project.StudentID).Msg("project rejected and deleted")
		return &ports.ApprovalResult{Deleted: true}, nil
	}

	project.Approved = true
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("approve project: %w", err)
	}

	s.log.Info().Str("project_id", projectID).Str("student_id", project.StudentID).Msg("project approved")
	return &ports.ApprovalResult{Project: project}, nil
}

// AddFeedback overwrites the feedback text and, when marks are supplied,
// stores them clamped into [0,20]. Allowed in any lifecycle state.
func (s *ProjectService) AddFeedback(ctx context.Context, in ports.FeedbackInput) (*domain.ProjectIdea, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	project.FacultyFeedback = in.Feedback
	if in.Marks != nil {
		project.Marks = domain.ClampMarks(*in.Marks)
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("add feedback: %w", err)
	}

	s.log.Info().Str("project_id", in.ProjectID).Int("marks", project.Marks).Msg("feedback recorded")
	return project, nil
}

// SubmitFinal attaches the final link to the caller's approved project and
// marks it final-submitted. Fails when no approved project exists.
func (s *ProjectService) SubmitFinal(ctx context.Context, studentID, finalLink string) (*domain.ProjectIdea, error) {
	project, err := s.projects.FindApprovedByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, domain.ErrNoApprovedProject
		}
		return nil, err
	}

	project.FinalLink = finalLink
	project.FinalSubmitted = true
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("submit final: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Str("student_id", studentID).Msg("final submission recorded")
	return project, nil
}

// ToggleFeature flips one feature's completed flag on the caller's own
// project. The index must fall inside the current feature sequence.
func (s *ProjectService) ToggleFeature(ctx context.Context, projectID, actorID string, index int, completed bool) (*domain.ProjectIdea, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(actorID) {
		return nil, domain.ErrForbidden
	}
	if index < 0 || index >= len(project.Features) {
		return nil, domain.ErrInvalidFeatureIndex
	}

	if err := s.projects.SetFeatureCompleted(ctx, projectID, index, completed); err != nil {
		return nil, fmt.Errorf("toggle feature: %w", err)
	}

	project.Features[index].Completed = completed
	return project, nil
}

func toFeatures(in []ports.FeatureInput) []domain.Feature {
	features := make([]domain.Feature, len(in))
	for i, f := range in {
		features[i] = domain.Feature{Name: f.Name, Completed: f.Completed}
	}
	return features
}
