package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// newsTopic is the fabric topic all tag notifications go to; the routing
// key is the tagged user's id.
const newsTopic = "news"

// IssueService owns the issue lifecycle and its authorization rules.
type IssueService struct {
	issues   ports.IssueRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	tagger   ports.TaggingService
	notifier ports.EventNotifier
	logger   zerolog.Logger
}

func NewIssueService(
	issues ports.IssueRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	tagger ports.TaggingService,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) *IssueService {
	return &IssueService{
		issues:   issues,
		comments: comments,
		users:    users,
		tagger:   tagger,
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID returns the issue or domain.ErrNotFound.
func (s *IssueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	return s.issues.FindByID(ctx, id)
}

// ListAll returns every issue.
func (s *IssueService) ListAll(ctx context.Context) ([]domain.Issue, error) {
	return s.issues.FindAll(ctx)
}

// ListByOwner returns all issues owned by ownerID. An unknown owner is
// NotFound; an owner without issues yields an empty list.
func (s *IssueService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Issue, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("list by owner: owner %s: %w", ownerID, domain.ErrNotFound)
	}
	return s.issues.FindByOwnerID(ctx, ownerID)
}

// AddNew creates an issue. The id must be unset (server-assigned) and the
// caller must have rights over the declared owner. The authorization
// check runs before any repository access so creation leaks no existence
// information. On success, users tagged in the title are notified.
func (s *IssueService) AddNew(ctx context.Context, ident domain.Identity, issue domain.Issue) (uuid.UUID, error) {
	if issue.ID != uuid.Nil {
		return uuid.Nil, fmt.Errorf("add issue: id must be unset: %w", domain.ErrBadRequest)
	}
	if issue.Title == "" || issue.Deadline == "" || issue.OwnerID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("add issue: missing required field: %w", domain.ErrBadRequest)
	}
	if !ident.HasRightsOrIsAdmin(issue.OwnerID) {
		return uuid.Nil, fmt.Errorf("add issue: %w", domain.ErrForbidden)
	}

	issue.ID = uuid.New()
	if err := s.issues.Save(ctx, &issue); err != nil {
		s.logger.Error().Err(err).Str("owner_id", issue.OwnerID.String()).Msg("failed to save issue")
		return uuid.Nil, fmt.Errorf("add issue: %w", err)
	}

	s.logger.Info().Str("issue_id", issue.ID.String()).Str("owner_id", issue.OwnerID.String()).Msg("issue created")
	s.notifyTagged(ctx, issue.Title, domain.NewIssueEvent(issue.ID))

	return issue.ID, nil
}

// Update replaces the issue snapshot under id, keeping the original id.
// The caller must have rights over the replacement's owner.
func (s *IssueService) Update(ctx context.Context, ident domain.Identity, id uuid.UUID, replacement domain.Issue) (*domain.Issue, error) {
	if replacement.Title == "" || replacement.Deadline == "" || replacement.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("update issue: missing required field: %w", domain.ErrBadRequest)
	}
	if !ident.HasRightsOrIsAdmin(replacement.OwnerID) {
		return nil, fmt.Errorf("update issue: %w", domain.ErrForbidden)
	}

	current, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update issue: %w", err)
	}

	replacement.ID = current.ID
	if err := s.issues.Save(ctx, &replacement); err != nil {
		return nil, fmt.Errorf("update issue: %w", err)
	}
	return &replacement, nil
}

// Patch applies a closed set of attribute changes. The existence check
// precedes authorization: rights are judged against the currently stored
// owner, not the payload. SetOwner transfers ownership and is admin only.
func (s *IssueService) Patch(ctx context.Context, ident domain.Identity, id uuid.UUID, ops []domain.IssuePatchOp) (*domain.Issue, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("patch issue: empty patch: %w", domain.ErrBadRequest)
	}
	for _, op := range ops {
		switch v := op.(type) {
		case domain.SetTitle:
			if v.Title == "" {
				return nil, fmt.Errorf("patch issue: empty title: %w", domain.ErrBadRequest)
			}
		case domain.SetDeadline:
			if v.Deadline == "" {
				return nil, fmt.Errorf("patch issue: empty deadline: %w", domain.ErrBadRequest)
			}
		case domain.SetOwner:
			if v.OwnerID == uuid.Nil {
				return nil, fmt.Errorf("patch issue: empty owner: %w", domain.ErrBadRequest)
			}
		}
	}

	current, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("patch issue: %w", err)
	}
	if !ident.HasRightsOrIsAdmin(current.OwnerID) {
		return nil, fmt.Errorf("patch issue: %w", domain.ErrForbidden)
	}

	for _, op := range ops {
		switch v := op.(type) {
		case domain.SetTitle:
			current.Title = v.Title
		case domain.SetDeadline:
			current.Deadline = v.Deadline
		case domain.SetOwner:
			if !ident.HasAdminRights() {
				return nil, fmt.Errorf("patch issue: ownership transfer: %w", domain.ErrForbidden)
			}
			current.OwnerID = v.OwnerID
		}
	}

	if err := s.issues.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("patch issue: %w", err)
	}
	return current, nil
}

// Delete removes the issue. The caller must be the current owner or an
// admin; the read happens first because rights depend on stored state.
func (s *IssueService) Delete(ctx context.Context, ident domain.Identity, id uuid.UUID) error {
	current, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if !ident.HasRightsOrIsAdmin(current.OwnerID) {
		return fmt.Errorf("delete issue: %w", domain.ErrForbidden)
	}

	if err := s.issues.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	s.logger.Info().Str("issue_id", id.String()).Msg("issue deleted")
	return nil
}

// WithComments joins the issue with all comments referencing it. The two
// reads are independent and run concurrently.
func (s *IssueService) WithComments(ctx context.Context, id uuid.UUID) (*domain.IssueWithComments, error) {
	var (
		issue    *domain.Issue
		comments []domain.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issue, err = s.issues.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.FindAllByIssueID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("issue with comments: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	return &domain.IssueWithComments{Issue: *issue, Comments: comments}, nil
}

// notifyTagged publishes one event per user tagged in text. Best effort:
// resolution and publish failures are logged and swallowed so they can
// never fail the enclosing write.
func (s *IssueService) notifyTagged(ctx context.Context, text string, event domain.IssueEvent) {
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
