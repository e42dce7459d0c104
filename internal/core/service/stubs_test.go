package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[uuid.UUID]*domain.User
	saveErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*domain.User)}
}

func (r *stubUserRepo) add(u domain.User) {
	clone := u
	r.byID[u.ID] = &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

type stubIssueRepo struct {
	byID      map[uuid.UUID]*domain.Issue
	saveErr   error
	findCalls int
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{byID: make(map[uuid.UUID]*domain.Issue)}
}

func (r *stubIssueRepo) add(i domain.Issue) {
	clone := i
	r.byID[i.ID] = &clone
}

func (r *stubIssueRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Issue, error) {
	r.findCalls++
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubIssueRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]domain.Issue, error) {
	var issues []domain.Issue
	for _, i := range r.byID {
		if i.OwnerID == ownerID {
			issues = append(issues, *i)
		}
	}
	return issues, nil
}

func (r *stubIssueRepo) FindAll(_ context.Context) ([]domain.Issue, error) {
	var issues []domain.Issue
	for _, i := range r.byID {
		issues = append(issues, *i)
	}
	return issues, nil
}

func (r *stubIssueRepo) Save(_ context.Context, issue *domain.Issue) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *issue
	r.byID[issue.ID] = &clone
	return nil
}

func (r *stubIssueRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubIssueRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

type stubCommentRepo struct {
	byID    map[uuid.UUID]*domain.Comment
	saveErr error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[uuid.UUID]*domain.Comment)}
}

func (r *stubCommentRepo) add(c domain.Comment) {
	clone := c
	r.byID[c.ID] = &clone
}

func (r *stubCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) FindAllByIssueID(_ context.Context, issueID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	for _, c := range r.byID {
		if c.IssueID == issueID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *stubCommentRepo) FindAllByUserID(_ context.Context, userID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	for _, c := range r.byID {
		if c.AuthorID == userID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *stubCommentRepo) FindAll(_ context.Context) ([]domain.Comment, error) {
	var comments []domain.Comment
	for _, c := range r.byID {
		comments = append(comments, *c)
	}
	return comments, nil
}

func (r *stubCommentRepo) Save(_ context.Context, comment *domain.Comment) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *comment
	r.byID[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Stub notifier
// ---------------------------------------------------------------------------

type publishedEvent struct {
	topic   string
	key     string
	payload any
}

type stubNotifier struct {
	mu        sync.Mutex
	published []publishedEvent
	err       error
}

func (n *stubNotifier) Publish(_ context.Context, topic, routingKey string, payload any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.published = append(n.published, publishedEvent{topic: topic, key: routingKey, payload: payload})
	return nil
}

func (n *stubNotifier) events() []publishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]publishedEvent, len(n.published))
	copy(out, n.published)
	return out
}

// ---------------------------------------------------------------------------
// Stub hasher and identity helpers
// ---------------------------------------------------------------------------

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (stubHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

func identityFor(u domain.User) domain.Identity {
	return domain.NewIdentity(u.ID.String(), []string{u.Role})
}

func adminIdentity() domain.Identity {
	return domain.NewIdentity(uuid.NewString(), []string{domain.RoleAdmin})
}

func regularUser(username string) domain.User {
	return domain.User{ID: uuid.New(), Username: username, Role: domain.RoleUser}
}
