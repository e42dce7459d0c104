package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// UserService owns user CRUD and the aggregated per-user view. Every
// returned user has the password hash scrubbed.
type UserService struct {
	users    ports.UserRepository
	issues   ports.IssueRepository
	comments ports.CommentRepository
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	issues ports.IssueRepository,
	comments ports.CommentRepository,
	hasher ports.PasswordHasher,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		issues:   issues,
		comments: comments,
		hasher:   hasher,
		logger:   logger,
	}
}

// Get returns the stored user. Only the user themselves or an admin may
// ask.
func (s *UserService) Get(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.User, error) {
	if !ident.HasRightsOrIsAdmin(id) {
		return nil, fmt.Errorf("get user: %w", domain.ErrForbidden)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	scrubbed := user.Scrubbed()
	return &scrubbed, nil
}

// ListAll returns every registered user. Admin only.
func (s *UserService) ListAll(ctx context.Context, ident domain.Identity) ([]domain.User, error) {
	if !ident.HasAdminRights() {
		return nil, fmt.Errorf("list users: %w", domain.ErrForbidden)
	}
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range all {
		all[i] = all[i].Scrubbed()
	}
	return all, nil
}

// Create registers a new user. Admin only. The plaintext password is
// hashed before anything touches the repository; ids are server-assigned.
func (s *UserService) Create(ctx context.Context, ident domain.Identity, input ports.CreateUserInput) (*domain.User, error) {
	if input.ID != uuid.Nil {
		return nil, fmt.Errorf("create user: id must be unset: %w", domain.ErrBadRequest)
	}
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("create user: missing credentials: %w", domain.ErrBadRequest)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("create user: unknown role %q: %w", input.Role, domain.ErrBadRequest)
	}
	if !ident.HasAdminRights() {
		return nil, fmt.Errorf("create user: %w", domain.ErrForbidden)
	}

	if existing, err := s.users.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("create user: username taken: %w", domain.ErrBadRequest)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: digest,
		Role:         role,
	}
	if err := s.users.Save(ctx, &user); err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to save user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user created")
	scrubbed := user.Scrubbed()
	return &scrubbed, nil
}

// Delete removes an account. Only the user themselves or an admin.
func (s *UserService) Delete(ctx context.Context, ident domain.Identity, id uuid.UUID) error {
	if !ident.HasRightsOrIsAdmin(id) {
		return fmt.Errorf("delete user: %w", domain.ErrForbidden)
	}
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !exists {
		return fmt.Errorf("delete user: %s: %w", id, domain.ErrNotFound)
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

// ResolveIDByUsername maps a username to its user id. Admin only.
func (s *UserService) ResolveIDByUsername(ctx context.Context, ident domain.Identity, username string) (uuid.UUID, error) {
	if !ident.HasAdminRights() {
		return uuid.Nil, fmt.Errorf("resolve username: %w", domain.ErrForbidden)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve username: %w", err)
	}
	return user.ID, nil
}

// AllDataForUser returns the user's issues and comments as parallel
// lists. The two reads are independent and fetched concurrently.
func (s *UserService) AllDataForUser(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.UserData, error) {
	if !ident.HasRightsOrIsAdmin(id) {
		return nil, fmt.Errorf("user data: %w", domain.ErrForbidden)
	}
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user data: %s: %w", id, domain.ErrNotFound)
	}

	var (
		issues   []domain.Issue
		comments []domain.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = s.issues.FindByOwnerID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.FindAllByUserID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}

	if issues == nil {
		issues = []domain.Issue{}
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return &domain.UserData{Issues: issues, Comments: comments}, nil
}
