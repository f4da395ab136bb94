package ports

import (
	"context"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// FeatureInput is one feature as supplied by the client.
type FeatureInput struct {
	Name      string
	Completed bool
}

// SubmitProjectInput carries all data needed to submit a new project idea.
type SubmitProjectInput struct {
	StudentID   string
	Title       string
	Description string
	Features    []FeatureInput
}

// UpdateProjectInput is an ownership-checked partial update. Nil pointers
// mean "leave unchanged"; a non-nil Features replaces the whole sequence.
type UpdateProjectInput struct {
	ProjectID   string
	ActorID     string
	Title       *string
	Description *string
	Features    []FeatureInput
}

// FeedbackInput carries faculty feedback. Marks is optional; when present
// it is clamped into [domain.MinMarks, domain.MaxMarks] before storage.
type FeedbackInput struct {
	ProjectID string
	Feedback  string
	Marks     *int
}

// StudentSummary is the owner info attached to enriched project listings.
type StudentSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"student_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ProjectWithStudent pairs a project with its owning student's summary.
type ProjectWithStudent struct {
	Project *domain.ProjectIdea `json:"project"`
	Student StudentSummary      `json:"student"`
}

// ApprovalResult reports the outcome of an approval decision. Project is
// nil when the decision was a rejection, in which case the record no
// longer exists.
type ApprovalResult struct {
	Project *domain.ProjectIdea
	Deleted bool
}

// ProjectService is the lifecycle manager for project ideas: it owns the
// submit → approve/reject → final submission transitions and all
// ownership checks.
type ProjectService interface {
	Submit(ctx context.Context, in SubmitProjectInput) (*domain.ProjectIdea, error)
	ListMine(ctx context.Context, studentID string) ([]*domain.ProjectIdea, error)
	// ListAll returns every project enriched with student name, student ID
	// and email. Faculty only (enforced at the route).
	ListAll(ctx context.Context) ([]ProjectWithStudent, error)
	// ListFinalMarks returns every project with marks, enriched with
	// student name and student ID. Visible to all authenticated roles.
	ListFinalMarks(ctx context.Context) ([]ProjectWithStudent, error)
	Update(ctx context.Context, in UpdateProjectInput) (*domain.ProjectIdea, error)
	Delete(ctx context.Context, projectID, actorID string) error
	Approve(ctx context.Context, projectID string, approved bool) (*ApprovalResult, error)
	AddFeedback(ctx context.Context, in FeedbackInput) (*domain.ProjectIdea, error)
	SubmitFinal(ctx context.Context, studentID, finalLink string) (*domain.ProjectIdea, error)
	ToggleFeature(ctx context.Context, projectID, actorID string, index int, completed bool) (*domain.ProjectIdea, error)
}
