package domain

import (
	"errors"
	"time"
)

const (
	// MinMarks and MaxMarks bound the marks a faculty member can assign.
	MinMarks = 0
	MaxMarks = 20
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrDuplicateActiveProject = errors.New("student already has an approved project")
	ErrNoApprovedProject      = errors.New("no approved project found")
	ErrInvalidFeatureIndex    = errors.New("invalid feature index")
	ErrForbidden              = errors.New("access forbidden")
)

// Feature is a named sub-deliverable of a project idea.
type Feature struct {
	Name      string `json:"name" bson:"name"`
	Completed bool   `json:"completed" bson:"completed"`
}

// ProjectIdea is the core aggregate: a student's project from submission
// through approval, feature tracking, final submission, and grading.
// Rejection deletes the record outright; there is no rejected state on disk.
type ProjectIdea struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	StudentID       string    `json:"student_id" bson:"student_id"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	Features        []Feature `json:"features" bson:"features"`
	Approved        bool      `json:"approved" bson:"approved"`
	FinalSubmitted  bool      `json:"final_submitted" bson:"final_submitted"`
	FacultyFeedback string    `json:"faculty_feedback" bson:"faculty_feedback"`
	Marks           int       `json:"marks" bson:"marks"`
	FinalLink       string    `json:"final_link" bson:"final_link"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the project belongs to the given student.
func (p *ProjectIdea) OwnedBy(userID string) bool {
	return p.StudentID == userID
}

// ClampMarks forces marks into [MinMarks, MaxMarks]. Applied on every
// write; stored values are never re-clamped on read.
func ClampMarks(marks int) int {
	if marks < MinMarks {
		return MinMarks
	}
	if marks > MaxMarks {
		return MaxMarks
	}
	return marks
}
