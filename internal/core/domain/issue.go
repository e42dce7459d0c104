package domain

import "github.com/google/uuid"

// Issue is a tracked work item. The id is server-assigned at creation and
// immutable afterwards; the owner reference changes only through an
// explicit SetOwner patch.
type Issue struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Deadline string    `json:"deadline"`
}

// IssuePatchOp is a single recognized attribute change. The set of
// operations is closed; unknown attributes cannot be expressed.
type IssuePatchOp interface {
	isPatchOp()
}

// SetTitle replaces the issue title.
type SetTitle struct {
	Title string
}

// SetDeadline replaces the issue deadline.
type SetDeadline struct {
	Deadline string
}

// SetOwner transfers the issue to another user. Admin only.
type SetOwner struct {
	OwnerID uuid.UUID
}

func (SetTitle) isPatchOp()    {}
func (SetDeadline) isPatchOp() {}
func (SetOwner) isPatchOp()    {}

// IssueWithComments joins an issue with every comment referencing it.
type IssueWithComments struct {
	Issue    Issue     `json:"issue"`
	Comments []Comment `json:"comments"`
}
