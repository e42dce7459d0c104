package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

// UserRepository is the persistence port for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// IssueRepository is the persistence port for issues. Save is an upsert
// keyed on the issue id.
type IssueRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]domain.Issue, error)
	FindAll(ctx context.Context) ([]domain.Issue, error)
	Save(ctx context.Context, issue *domain.Issue) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// CommentRepository is the persistence port for comments.
type CommentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindAllByIssueID(ctx context.Context, issueID uuid.UUID) ([]domain.Comment, error)
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Comment, error)
	FindAll(ctx context.Context) ([]domain.Comment, error)
	Save(ctx context.Context, comment *domain.Comment) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
