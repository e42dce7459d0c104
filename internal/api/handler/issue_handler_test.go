package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/api/middleware"
	"github.com/tracknest/issuetracker/internal/core/domain"
)

type stubIssueService struct {
	addNewIdent domain.Identity
	addNewIssue domain.Issue
	addNewID    uuid.UUID
	addNewErr   error

	getByIDIssue *domain.Issue
	getByIDErr   error
}

func (s *stubIssueService) GetByID(_ context.Context, _ uuid.UUID) (*domain.Issue, error) {
	return s.getByIDIssue, s.getByIDErr
}

func (s *stubIssueService) ListAll(context.Context) ([]domain.Issue, error) { return nil, nil }

func (s *stubIssueService) ListByOwner(context.Context, uuid.UUID) ([]domain.Issue, error) {
	return nil, nil
}

func (s *stubIssueService) AddNew(_ context.Context, ident domain.Identity, issue domain.Issue) (uuid.UUID, error) {
	s.addNewIdent = ident
	s.addNewIssue = issue
	if s.addNewErr != nil {
		return uuid.Nil, s.addNewErr
	}
	return s.addNewID, nil
}

func (s *stubIssueService) Update(context.Context, domain.Identity, uuid.UUID, domain.Issue) (*domain.Issue, error) {
	return nil, nil
}

func (s *stubIssueService) Patch(context.Context, domain.Identity, uuid.UUID, []domain.IssuePatchOp) (*domain.Issue, error) {
	return nil, nil
}

func (s *stubIssueService) Delete(context.Context, domain.Identity, uuid.UUID) error { return nil }

func (s *stubIssueService) WithComments(context.Context, uuid.UUID) (*domain.IssueWithComments, error) {
	return nil, nil
}

func newTestContext(t *testing.T, method, path, body string, ident *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set(middleware.IdentityKey, *ident)
	}
	return c, rec
}

func TestCreateIssueReturnsAssignedID(t *testing.T) {
	owner := uuid.New()
	assigned := uuid.New()
	svc := &stubIssueService{addNewID: assigned}
	h := NewIssueHandler(svc)

	ident := domain.NewIdentity(owner.String(), []string{domain.RoleUser})
	body := `{"title":"fix login","owner_id":"` + owner.String() + `","deadline":"2026-09-30"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/issues", body, &ident)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp createIssueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != assigned.String() {
		t.Errorf("id = %q, want %q", resp.ID, assigned)
	}
	if svc.addNewIssue.OwnerID != owner {
		t.Errorf("service received owner %s, want %s", svc.addNewIssue.OwnerID, owner)
	}
	if svc.addNewIdent.Subject() != owner.String() {
		t.Errorf("service received identity subject %q, want %q", svc.addNewIdent.Subject(), owner)
	}
}

func TestCreateIssueValidationFailure(t *testing.T) {
	h := NewIssueHandler(&stubIssueService{})
	ident := domain.NewIdentity(uuid.NewString(), []string{domain.RoleUser})

	c, _ := newTestContext(t, http.MethodPost, "/v1/issues", `{"title":"no owner"}`, &ident)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 echo.HTTPError", err)
	}
}

func TestCreateIssueWithoutIdentity(t *testing.T) {
	h := NewIssueHandler(&stubIssueService{})
	owner := uuid.NewString()
	body := `{"title":"t","owner_id":"` + owner + `","deadline":"2026-09-30"}`

	c, _ := newTestContext(t, http.MethodPost, "/v1/issues", body, nil)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("got %v, want 401 echo.HTTPError", err)
	}
}

func TestGetIssueInvalidPathID(t *testing.T) {
	h := NewIssueHandler(&stubIssueService{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/issues/not-a-uuid", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400 echo.HTTPError", err)
	}
}

func TestGetIssuePropagatesServiceError(t *testing.T) {
	h := NewIssueHandler(&stubIssueService{getByIDErr: domain.ErrNotFound})

	id := uuid.NewString()
	c, _ := newTestContext(t, http.MethodGet, "/v1/issues/"+id, "", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPatchRequestBuildsClosedOps(t *testing.T) {
	title := "renamed"
	req := issuePatchRequest{Title: &title}

	ops, err := req.toPatchOps()
	if err != nil {
		t.Fatalf("toPatchOps() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	if op, ok := ops[0].(domain.SetTitle); !ok || op.Title != "renamed" {
		t.Fatalf("got %#v, want SetTitle{renamed}", ops[0])
	}
}
