package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[string]*domain.ProjectIdea
	order    []string
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.ProjectIdea)}
}

func cloneProject(p *domain.ProjectIdea) *domain.ProjectIdea {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Features = append([]domain.Feature(nil), p.Features...)
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.ProjectIdea) (*domain.ProjectIdea, error) {
	r.nextID++
	created := cloneProject(p)
	created.ID = fmt.Sprintf("project_%d", r.nextID)
	r.projects[created.ID] = cloneProject(created)
	r.order = append(r.order, created.ID)
	return cloneProject(created), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.ProjectIdea, error) {
	if p, ok := r.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) FindApprovedByStudent(_ context.Context, studentID string) (*domain.ProjectIdea, error) {
	for _, id := range r.order {
		p := r.projects[id]
		if p != nil && p.StudentID == studentID && p.Approved {
			return cloneProject(p), nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListByStudent(_ context.Context, studentID string) ([]*domain.ProjectIdea, error) {
	var out []*domain.ProjectIdea
	for _, id := range r.order {
		if p := r.projects[id]; p != nil && p.StudentID == studentID {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListAll(_ context.Context) ([]*domain.ProjectIdea, error) {
	var out []*domain.ProjectIdea
	for _, id := range r.order {
		if p := r.projects[id]; p != nil {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.ProjectIdea) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) SetFeatureCompleted(_ context.Context, id string, index int, completed bool) error {
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if index < 0 || index >= len(p.Features) {
		return domain.ErrInvalidFeatureIndex
	}
	p.Features[index].Completed = completed
	return nil
}

func newProjectService(projects *stubProjectRepo, users *stubUserRepo) *ProjectService {
	return NewProjectService(projects, users, zerolog.Nop())
}

func submitProject(t *testing.T, svc *ProjectService, studentID string) *domain.ProjectIdea {
	t.Helper()
	project, err := svc.Submit(context.Background(), ports.SubmitProjectInput{
		StudentID:   studentID,
		Title:       "Portal",
		Description: "A portal",
		Features: []ports.FeatureInput{
			{Name: "auth"},
			{Name: "projects"},
			{Name: "grading"},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return project
}

func TestProjectService_Submit_Defaults(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())

	project := submitProject(t, svc, "student_1")

	if project.Approved || project.FinalSubmitted {
		t.Fatalf("new project must be unapproved and not final-submitted: %+v", project)
	}
	if project.Marks != 0 {
		t.Fatalf("expected marks 0, got %d", project.Marks)
	}
	for _, f := range project.Features {
		if f.Completed {
			t.Fatalf("new project features must start incomplete: %+v", f)
		}
	}
}

func TestProjectService_Submit_RejectsSecondActiveProject(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())

	project := submitProject(t, svc, "student_1")
	if _, err := svc.Approve(context.Background(), project.ID, true); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err := svc.Submit(context.Background(), ports.SubmitProjectInput{
		StudentID:   "student_1",
		Title:       "Second",
		Description: "Another",
	})
	if err != domain.ErrDuplicateActiveProject {
		t.Fatalf("expected ErrDuplicateActiveProject, got %v", err)
	}

	// Unapproved projects do not block a new submission.
	submitProject(t, svc, "student_2")
	if _, err := svc.Submit(context.Background(), ports.SubmitProjectInput{
		StudentID:   "student_2",
		Title:       "Other",
		Description: "Second idea while the first awaits review",
	}); err != nil {
		t.Fatalf("student with only pending ideas blocked: %v", err)
	}
}

func TestProjectService_Submit_Validation(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), newStubUserRepo())

	if _, err := svc.Submit(context.Background(), ports.SubmitProjectInput{StudentID: "s", Title: "X"}); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for missing description, got %v", err)
	}
}

func TestProjectService_AddFeedback_ClampsMarks(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	cases := []struct {
		in   int
		want int
	}{
		{25, 20},
		{-5, 0},
		{15, 15},
	}
	for _, tc := range cases {
		marks := tc.in
		updated, err := svc.AddFeedback(context.Background(), ports.FeedbackInput{
			ProjectID: project.ID,
			Feedback:  "Good work",
			Marks:     &marks,
		})
		if err != nil {
			t.Fatalf("AddFeedback(%d) failed: %v", tc.in, err)
		}
		if updated.Marks != tc.want {
			t.Fatalf("AddFeedback(%d): expected marks %d, got %d", tc.in, tc.want, updated.Marks)
		}
	}
}

func TestProjectService_AddFeedback_WithoutMarksKeepsOld(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	marks := 12
	if _, err := svc.AddFeedback(context.Background(), ports.FeedbackInput{ProjectID: project.ID, Feedback: "ok", Marks: &marks}); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}

	updated, err := svc.AddFeedback(context.Background(), ports.FeedbackInput{ProjectID: project.ID, Feedback: "revised"})
	if err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}
	if updated.Marks != 12 {
		t.Fatalf("marks should be untouched when absent, got %d", updated.Marks)
	}
	if updated.FacultyFeedback != "revised" {
		t.Fatalf("feedback not overwritten: %q", updated.FacultyFeedback)
	}
}

func TestProjectService_ToggleFeature(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	if _, err := svc.ToggleFeature(context.Background(), project.ID, "student_1", 5, true); err != domain.ErrInvalidFeatureIndex {
		t.Fatalf("expected ErrInvalidFeatureIndex for out-of-bounds index, got %v", err)
	}
	if _, err := svc.ToggleFeature(context.Background(), project.ID, "student_1", -1, true); err != domain.ErrInvalidFeatureIndex {
		t.Fatalf("expected ErrInvalidFeatureIndex for negative index, got %v", err)
	}

	updated, err := svc.ToggleFeature(context.Background(), project.ID, "student_1", 1, true)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !updated.Features[1].Completed {
		t.Fatalf("feature 1 should be completed")
	}
	if updated.Features[0].Completed || updated.Features[2].Completed {
		t.Fatalf("sibling features must be unchanged: %+v", updated.Features)
	}
}

func TestProjectService_Reject_DeletesPermanently(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	result, err := svc.Approve(context.Background(), project.ID, false)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if !result.Deleted || result.Project != nil {
		t.Fatalf("rejection must delete the record: %+v", result)
	}

	mine, err := svc.ListMine(context.Background(), "student_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, p := range mine {
		if p.ID == project.ID {
			t.Fatalf("rejected project still listed: %+v", p)
		}
	}
}

func TestProjectService_SubmitFinal(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())

	if _, err := svc.SubmitFinal(context.Background(), "student_1", "https://github.com/a/x"); err != domain.ErrNoApprovedProject {
		t.Fatalf("expected ErrNoApprovedProject, got %v", err)
	}

	project := submitProject(t, svc, "student_1")
	if _, err := svc.SubmitFinal(context.Background(), "student_1", "https://github.com/a/x"); err != domain.ErrNoApprovedProject {
		t.Fatalf("unapproved project must not accept a final link, got %v", err)
	}

	if _, err := svc.Approve(context.Background(), project.ID, true); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	final, err := svc.SubmitFinal(context.Background(), "student_1", "https://github.com/a/x")
	if err != nil {
		t.Fatalf("submit final failed: %v", err)
	}
	if !final.FinalSubmitted || final.FinalLink != "https://github.com/a/x" {
		t.Fatalf("final submission not recorded: %+v", final)
	}
}

func TestProjectService_NonOwnerIsForbidden(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	title := "Hijacked"
	if _, err := svc.Update(context.Background(), ports.UpdateProjectInput{
		ProjectID: project.ID,
		ActorID:   "student_2",
		Title:     &title,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}

	if err := svc.Delete(context.Background(), project.ID, "student_2"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	if _, err := svc.ToggleFeature(context.Background(), project.ID, "student_2", 0, true); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on toggle, got %v", err)
	}

	// Failed checks must leave the record untouched.
	stored, err := repo.FindByID(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("project vanished: %v", err)
	}
	if stored.Title != "Portal" || stored.Features[0].Completed {
		t.Fatalf("record modified by forbidden calls: %+v", stored)
	}
}

func TestProjectService_Update_ReplacesFeaturesWholesale(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	updated, err := svc.Update(context.Background(), ports.UpdateProjectInput{
		ProjectID: project.ID,
		ActorID:   "student_1",
		Features:  []ports.FeatureInput{{Name: "rewritten", Completed: true}},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Features) != 1 || updated.Features[0].Name != "rewritten" {
		t.Fatalf("features must be replaced wholesale: %+v", updated.Features)
	}
	if updated.Title != "Portal" {
		t.Fatalf("absent fields must stay untouched, got title %q", updated.Title)
	}
}

func TestProjectService_Update_DoesNotTouchGrading(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	marks := 18
	if _, err := svc.AddFeedback(context.Background(), ports.FeedbackInput{ProjectID: project.ID, Feedback: "Good", Marks: &marks}); err != nil {
		t.Fatalf("feedback failed: %v", err)
	}

	title := "Renamed"
	updated, err := svc.Update(context.Background(), ports.UpdateProjectInput{
		ProjectID: project.ID,
		ActorID:   "student_1",
		Title:     &title,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Marks != 18 || updated.FacultyFeedback != "Good" {
		t.Fatalf("owner update must not touch grading: %+v", updated)
	}
}

func TestProjectService_ListAll_EnrichesStudentInfo(t *testing.T) {
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newProjectService(projects, users)

	owner, err := users.Create(context.Background(), &domain.User{
		Name:      "Alice",
		Email:     "alice@example.com",
		StudentID: "S-001",
		Role:      domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	submitProject(t, svc, owner.ID)

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 project, got %d", len(all))
	}
	student := all[0].Student
	if student.Name != "Alice" || student.StudentID != "S-001" || student.Email != "alice@example.com" {
		t.Fatalf("student info not enriched: %+v", student)
	}

	// Final-marks view withholds email but keeps name and student ID.
	finals, err := svc.ListFinalMarks(context.Background())
	if err != nil {
		t.Fatalf("final marks failed: %v", err)
	}
	if finals[0].Student.Email != "" {
		t.Fatalf("final-marks view must not expose email: %+v", finals[0].Student)
	}
	if finals[0].Student.Name != "Alice" {
		t.Fatalf("final-marks view missing student name: %+v", finals[0].Student)
	}
}

func TestProjectService_EndToEndLifecycle(t *testing.T) {
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newProjectService(projects, users)

	owner, err := users.Create(context.Background(), &domain.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	project, err := svc.Submit(context.Background(), ports.SubmitProjectInput{
		StudentID:   owner.ID,
		Title:       "X",
		Description: "Y",
		Features:    []ports.FeatureInput{{Name: "F1"}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if project.Approved || project.FinalSubmitted || project.Marks != 0 {
		t.Fatalf("unexpected initial state: %+v", project)
	}

	result, err := svc.Approve(context.Background(), project.ID, true)
	if err != nil || !result.Project.Approved {
		t.Fatalf("approve failed: %v %+v", err, result)
	}

	final, err := svc.SubmitFinal(context.Background(), owner.ID, "https://github.com/a/x")
	if err != nil || !final.FinalSubmitted {
		t.Fatalf("final submission failed: %v %+v", err, final)
	}

	marks := 18
	graded, err := svc.AddFeedback(context.Background(), ports.FeedbackInput{
		ProjectID: project.ID,
		Feedback:  "Good work",
		Marks:     &marks,
	})
	if err != nil || graded.Marks != 18 {
		t.Fatalf("grading failed: %v %+v", err, graded)
	}

	finals, err := svc.ListFinalMarks(context.Background())
	if err != nil {
		t.Fatalf("final marks failed: %v", err)
	}
	if len(finals) != 1 || finals[0].Project.Marks != 18 {
		t.Fatalf("marks not visible in listing: %+v", finals)
	}
}

func TestProjectService_Approve_Timestamps(t *testing.T) {
	repo := newStubProjectRepo()
	svc := newProjectService(repo, newStubUserRepo())
	project := submitProject(t, svc, "student_1")

	before := time.Now().Add(-time.Second)
	result, err := svc.Approve(context.Background(), project.ID, true)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if result.Project.UpdatedAt.Before(before) {
		t.Fatalf("UpdatedAt not bumped on approval: %v", result.Project.UpdatedAt)
	}
}
