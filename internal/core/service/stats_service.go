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

// StatsService is a read-only aggregator over issues, comments and users.
type StatsService struct {
	issues   ports.IssueRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	tagger   ports.TaggingService
	logger   zerolog.Logger
}

func NewStatsService(
	issues ports.IssueRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	tagger ports.TaggingService,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		issues:   issues,
		comments: comments,
		users:    users,
		tagger:   tagger,
		logger:   logger,
	}
}

// StatsForUser counts a user's issues and comments. Admin only. The two
// counts are independent reads and fetched concurrently.
func (s *StatsService) StatsForUser(ctx context.Context, ident domain.Identity, userID uuid.UUID) (*domain.UserStats, error) {
	if !ident.HasAdminRights() {
		return nil, fmt.Errorf("user stats: %w", domain.ErrForbidden)
	}

	var (
		issues   []domain.Issue
		comments []domain.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = s.issues.FindByOwnerID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.FindAllByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &domain.UserStats{
		UserID:       userID,
		IssueCount:   len(issues),
		CommentCount: len(comments),
	}, nil
}

// TagStatsForIssue counts the distinct users mentioned across all
// comments on the issue. The admin gate lives in the tagging resolver.
func (s *StatsService) TagStatsForIssue(ctx context.Context, ident domain.Identity, issueID uuid.UUID) (*domain.IssueTagStats, error) {
	exists, err := s.issues.ExistsByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("tag stats: issue %s: %w", issueID, domain.ErrNotFound)
	}

	comments, err := s.comments.FindAllByIssueID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}

	count, err := s.tagger.CountDistinctTagged(ctx, ident, comments)
	if err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}
	return &domain.IssueTagStats{IssueID: issueID, TaggedUserCount: count}, nil
}

// RegisteredUserCount returns the total number of registered users. Any
// authenticated caller may ask.
func (s *StatsService) RegisteredUserCount(ctx context.Context) (int, error) {
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return len(all), nil
}
