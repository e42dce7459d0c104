package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// CommentService owns the comment lifecycle. Issues are cross-referenced
// for existence on post and for ownership on delete.
type CommentService struct {
	comments ports.CommentRepository
	issues   ports.IssueRepository
	users    ports.UserRepository
	tagger   ports.TaggingService
	notifier ports.EventNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCommentService(
	comments ports.CommentRepository,
	issues ports.IssueRepository,
	users ports.UserRepository,
	tagger ports.TaggingService,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		issues:   issues,
		users:    users,
		tagger:   tagger,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetByID returns the comment or domain.ErrNotFound.
func (s *CommentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.comments.FindByID(ctx, id)
}

// ListByIssue returns all comments on an issue. An unknown issue is
// NotFound; an issue without comments yields an empty list.
func (s *CommentService) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Comment, error) {
	exists, err := s.issues.ExistsByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("list comments: issue %s: %w", issueID, domain.ErrNotFound)
	}
	return s.comments.FindAllByIssueID(ctx, issueID)
}

// ListByUser returns the comments authored by userID. Only the user
// themselves or an admin may ask.
func (s *CommentService) ListByUser(ctx context.Context, ident domain.Identity, userID uuid.UUID) ([]domain.Comment, error) {
	if !ident.HasRightsOrIsAdmin(userID) {
		return nil, fmt.Errorf("list user comments: %w", domain.ErrForbidden)
	}
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("list user comments: user %s: %w", userID, domain.ErrNotFound)
	}
	return s.comments.FindAllByUserID(ctx, userID)
}

// Post creates a comment. The id must be unset, the caller must have
// rights over the declared author, and the referenced issue must exist.
// The creation timestamp is assigned here, never taken from the payload.
// On success, users tagged in the content are notified with the parent
// issue id.
func (s *CommentService) Post(ctx context.Context, ident domain.Identity, comment domain.Comment) (*domain.Comment, error) {
	if comment.ID != uuid.Nil {
		return nil, fmt.Errorf("post comment: id must be unset: %w", domain.ErrBadRequest)
	}
	if comment.Content == "" || comment.AuthorID == uuid.Nil || comment.IssueID == uuid.Nil {
		return nil, fmt.Errorf("post comment: missing required field: %w", domain.ErrBadRequest)
	}
	if !ident.HasRightsOrIsAdmin(comment.AuthorID) {
		return nil, fmt.Errorf("post comment: %w", domain.ErrForbidden)
	}

	exists, err := s.issues.ExistsByID(ctx, comment.IssueID)
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("post comment: issue %s: %w", comment.IssueID, domain.ErrNotFound)
	}

	comment.ID = uuid.New()
	comment.CreatedAt = s.now()
	if err := s.comments.Save(ctx, &comment); err != nil {
		s.logger.Error().Err(err).Str("issue_id", comment.IssueID.String()).Msg("failed to save comment")
		return nil, fmt.Errorf("post comment: %w", err)
	}

	s.logger.Info().
		Str("comment_id", comment.ID.String()).
		Str("issue_id", comment.IssueID.String()).
		Msg("comment posted")
	s.notifyTagged(ctx, comment.Content, domain.NewCommentEvent(comment.IssueID))

	return &comment, nil
}

// Delete removes a comment. Permitted for the parent issue's owner, the
// comment's author, or an admin. The issue and comment reads are
// independent and run concurrently.
func (s *CommentService) Delete(ctx context.Context, ident domain.Identity, commentID, issueID uuid.UUID) error {
	var (
		issue   *domain.Issue
		comment *domain.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issue, err = s.issues.FindByID(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		comment, err = s.comments.FindByID(gctx, commentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if !ident.HasRightsOrIsAdmin(issue.OwnerID) && !ident.HasRightsOrIsAdmin(comment.AuthorID) {
		return fmt.Errorf("delete comment: %w", domain.ErrForbidden)
	}

	if err := s.comments.DeleteByID(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.logger.Info().Str("comment_id", commentID.String()).Msg("comment deleted")
	return nil
}

func (s *CommentService) notifyTagged(ctx context.Context, text string, event domain.IssueEvent) {
	ids, err := s.tagger.ExtractMentions(ctx, text)
	if err != nil {
		s.logger.Warn().Err(err).Str("issue_id", event.IssueID.String()).Msg("mention resolution failed, skipping notifications")
		return
	}
	for _, userID := range ids {
		if err := s.notifier.Publish(ctx, newsTopic, userID.String(), event); err != nil {
			s.logger.Warn().Err(err).
				Str("tagged_user_id", userID.String()).
				Str("issue_id", event.IssueID.String()).
				Msg("event publish failed")
		}
	}
}
