package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

func TestExtractMentionsResolvesRegisteredUsers(t *testing.T) {
	users := newStubUserRepo()
	alice := regularUser("alice")
	bob := regularUser("bob")
	users.add(alice)
	users.add(bob)

	svc := NewTaggingService(users)

	ids, err := svc.ExtractMentions(context.Background(), "hello @alice and @bob, also @alice")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}

	want := map[uuid.UUID]bool{alice.ID: true, bob.ID: true}
	if len(ids) != len(want) {
		t.Fatalf("got %d mentions, want %d", len(ids), len(want))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected mention id %s", id)
		}
	}
}

func TestExtractMentionsIgnoresUnknownUsers(t *testing.T) {
	users := newStubUserRepo()
	users.add(regularUser("alice"))

	svc := NewTaggingService(users)

	ids, err := svc.ExtractMentions(context.Background(), "cc @carol please")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("got %d mentions, want 0", len(ids))
	}
}

func TestExtractMentionsCaseSensitive(t *testing.T) {
	users := newStubUserRepo()
	users.add(regularUser("Alice"))

	svc := NewTaggingService(users)

	ids, err := svc.ExtractMentions(context.Background(), "hi @alice")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("got %d mentions, want 0: matching must be case-sensitive", len(ids))
	}
}

func TestExtractMentionsSkipsRepositoryWhenNoTokens(t *testing.T) {
	svc := NewTaggingService(newStubUserRepo())

	ids, err := svc.ExtractMentions(context.Background(), "no mentions here")
	if err != nil {
		t.Fatalf("ExtractMentions() error = %v", err)
	}
	if ids != nil {
		t.Fatalf("got %v, want nil", ids)
	}
}

func TestCountDistinctTaggedUnionsAcrossComments(t *testing.T) {
	users := newStubUserRepo()
	alice := regularUser("alice")
	bob := regularUser("bob")
	users.add(alice)
	users.add(bob)

	svc := NewTaggingService(users)

	comments := []domain.Comment{
		{ID: uuid.New(), Content: "ping @alice"},
		{ID: uuid.New(), Content: "@alice and @bob both"},
		{ID: uuid.New(), Content: "nothing"},
	}

	n, err := svc.CountDistinctTagged(context.Background(), adminIdentity(), comments)
	if err != nil {
		t.Fatalf("CountDistinctTagged() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d distinct tagged users, want 2", n)
	}
}

func TestCountDistinctTaggedRequiresAdmin(t *testing.T) {
	svc := NewTaggingService(newStubUserRepo())
	ident := identityFor(regularUser("mallory"))

	_, err := svc.CountDistinctTagged(context.Background(), ident, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}
