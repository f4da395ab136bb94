package domain

import "time"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// User models an authenticated actor in the portal. Role is fixed at
// creation; there is no endpoint that changes it or deletes the account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	StudentID    string    `json:"student_id,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsFaculty reports whether the user holds the faculty role.
func (u *User) IsFaculty() bool {
	return u.Role == RoleFaculty
}
