package domain

import (
	"errors"
	"time"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// Announcement is a faculty-authored notice visible to everyone.
// Immutable after creation; faculty may delete.
type Announcement struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
