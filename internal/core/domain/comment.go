package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a text annotation on an issue. CreatedAt is assigned by the
// comment service at post time and never mutated.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"author_id"`
	IssueID   uuid.UUID `json:"issue_id"`
	CreatedAt time.Time `json:"created_at"`
}
