package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// TaggingService resolves @username mentions in free text against the
// registered user directory.
type TaggingService struct {
	users ports.UserRepository
}

func NewTaggingService(users ports.UserRepository) *TaggingService {
	return &TaggingService{users: users}
}

// ExtractMentions returns the ids of registered users mentioned in text.
// Tokens are split on whitespace; a mention is a token starting with '@'.
// Trailing punctuation is trimmed so "@bob," resolves bob. Matching is
// exact and case-sensitive; duplicates collapse.
func (s *TaggingService) ExtractMentions(ctx context.Context, text string) ([]uuid.UUID, error) {
	names := mentionTokens(text)
	if len(names) == 0 {
		return nil, nil
	}

	all, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract mentions: %w", err)
	}

	var ids []uuid.UUID
	for _, u := range all {
		if _, ok := names[u.Username]; ok {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

// CountDistinctTagged returns the cardinality of the union of mention
// sets across all given comments. Admin only: the result surfaces
// cross-user linkage data.
func (s *TaggingService) CountDistinctTagged(ctx context.Context, ident domain.Identity, comments []domain.Comment) (int, error) {
	if !ident.HasAdminRights() {
		return 0, fmt.Errorf("count tagged: %w", domain.ErrForbidden)
	}

	tagged := make(map[uuid.UUID]struct{})
	for _, c := range comments {
		ids, err := s.ExtractMentions(ctx, c.Content)
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			tagged[id] = struct{}{}
		}
	}
	return len(tagged), nil
}

// mentionTokens scans text for @-prefixed tokens and returns the
// candidate usernames as a set.
func mentionTokens(text string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		if !strings.HasPrefix(tok, "@") {
			continue
		}
		name := strings.TrimRightFunc(tok[1:], func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
		})
		if name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}
