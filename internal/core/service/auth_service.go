package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// AuthService exchanges credentials for a signed bearer token.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, logger: logger}
}

// Login verifies the credentials and returns a token. An unknown
// username is NotFound; a wrong password is Unauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return "", fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	token, err := s.codec.Issue(*user)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}
