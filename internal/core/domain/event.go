package domain

import "github.com/google/uuid"

const (
	EventKindNewIssue   = "new_issue"
	EventKindNewComment = "new_comment"
)

// IssueEvent is the payload published to the message fabric when a write
// succeeds. Events are routed per tagged user and carry the issue id the
// mention appeared on.
type IssueEvent struct {
	Kind    string    `json:"kind"`
	IssueID uuid.UUID `json:"issue_id"`
}

// NewIssueEvent builds the event published when an issue is created.
func NewIssueEvent(issueID uuid.UUID) IssueEvent {
	return IssueEvent{Kind: EventKindNewIssue, IssueID: issueID}
}

// NewCommentEvent builds the event published when a comment is posted.
// It carries the parent issue id, not the comment id.
func NewCommentEvent(issueID uuid.UUID) IssueEvent {
	return IssueEvent{Kind: EventKindNewComment, IssueID: issueID}
}
