package ports

import (
	"context"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

// PasswordHasher is the injected one-way hash capability.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenCodec issues and verifies bearer tokens. Verify returns the
// identity encoded in a valid token, or domain.ErrUnauthorized.
type TokenCodec interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (domain.Identity, error)
}

// EventNotifier publishes a domain event to the message fabric. Delivery
// is best effort; callers must treat errors as advisory and never fail
// the enclosing write because of them.
type EventNotifier interface {
	Publish(ctx context.Context, topic, routingKey string, payload any) error
}
