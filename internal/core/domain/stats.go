package domain

import "github.com/google/uuid"

// UserStats counts a user's issues and comments.
type UserStats struct {
	UserID       uuid.UUID `json:"user_id"`
	IssueCount   int       `json:"issue_count"`
	CommentCount int       `json:"comment_count"`
}

// IssueTagStats counts the distinct users mentioned across all comments
// of one issue.
type IssueTagStats struct {
	IssueID         uuid.UUID `json:"issue_id"`
	TaggedUserCount int       `json:"tagged_user_count"`
}

// UserData is the aggregated per-user view: the issues a user owns and
// the comments they authored.
type UserData struct {
	Issues   []Issue   `json:"issues"`
	Comments []Comment `json:"comments"`
}
