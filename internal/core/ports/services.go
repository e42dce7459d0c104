package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

// IssueService owns the issue lifecycle and its authorization rules.
type IssueService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	ListAll(ctx context.Context) ([]domain.Issue, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Issue, error)
	AddNew(ctx context.Context, ident domain.Identity, issue domain.Issue) (uuid.UUID, error)
	Update(ctx context.Context, ident domain.Identity, id uuid.UUID, replacement domain.Issue) (*domain.Issue, error)
	Patch(ctx context.Context, ident domain.Identity, id uuid.UUID, ops []domain.IssuePatchOp) (*domain.Issue, error)
	Delete(ctx context.Context, ident domain.Identity, id uuid.UUID) error
	WithComments(ctx context.Context, id uuid.UUID) (*domain.IssueWithComments, error)
}

// CommentService owns the comment lifecycle, cross-referencing issues.
type CommentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Comment, error)
	ListByUser(ctx context.Context, ident domain.Identity, userID uuid.UUID) ([]domain.Comment, error)
	Post(ctx context.Context, ident domain.Identity, comment domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, ident domain.Identity, commentID, issueID uuid.UUID) error
}

// CreateUserInput carries the fields for user creation. ID must be unset;
// ids are server-assigned.
type CreateUserInput struct {
	ID       uuid.UUID
	Username string
	Password string
	Role     string
}

// UserService owns user CRUD and the aggregated per-user view.
type UserService interface {
	Get(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.User, error)
	ListAll(ctx context.Context, ident domain.Identity) ([]domain.User, error)
	Create(ctx context.Context, ident domain.Identity, input CreateUserInput) (*domain.User, error)
	Delete(ctx context.Context, ident domain.Identity, id uuid.UUID) error
	ResolveIDByUsername(ctx context.Context, ident domain.Identity, username string) (uuid.UUID, error)
	AllDataForUser(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.UserData, error)
}

// TaggingService extracts @mentions and resolves them against the user
// directory.
type TaggingService interface {
	ExtractMentions(ctx context.Context, text string) ([]uuid.UUID, error)
	CountDistinctTagged(ctx context.Context, ident domain.Identity, comments []domain.Comment) (int, error)
}

// StatsService is the read-only aggregator over issues, comments and
// users.
type StatsService interface {
	StatsForUser(ctx context.Context, ident domain.Identity, userID uuid.UUID) (*domain.UserStats, error)
	TagStatsForIssue(ctx context.Context, ident domain.Identity, issueID uuid.UUID) (*domain.IssueTagStats, error)
	RegisteredUserCount(ctx context.Context) (int, error)
}

// AuthService exchanges credentials for a signed bearer token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}
