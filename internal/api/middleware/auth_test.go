package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

type stubCodec struct {
	ident domain.Identity
	err   error
}

func (c *stubCodec) Issue(domain.User) (string, error) {
	return "", errors.New("not implemented")
}

func (c *stubCodec) Verify(string) (domain.Identity, error) {
	return c.ident, c.err
}

func runAuth(t *testing.T, codec *stubCodec, header string) (*httptest.ResponseRecorder, domain.Identity, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issues", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen domain.Identity
	next := func(c echo.Context) error {
		seen, _ = c.Get(IdentityKey).(domain.Identity)
		return c.NoContent(http.StatusOK)
	}

	err := Auth(codec)(next)(c)
	return rec, seen, err
}

func TestAuthInjectsVerifiedIdentity(t *testing.T) {
	subject := uuid.NewString()
	codec := &stubCodec{ident: domain.NewIdentity(subject, []string{domain.RoleUser})}

	_, seen, err := runAuth(t, codec, "Bearer good-token")
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if seen.Subject() != subject {
		t.Errorf("injected subject = %q, want %q", seen.Subject(), subject)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	_, _, err := runAuth(t, &stubCodec{}, "")
	assertUnauthorized(t, err)
}

func TestAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc123", "Bearer"} {
		_, _, err := runAuth(t, &stubCodec{}, header)
		assertUnauthorized(t, err)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	codec := &stubCodec{err: domain.ErrUnauthorized}

	_, _, err := runAuth(t, codec, "Bearer expired-token")
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("got %v, want *echo.HTTPError", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", httpErr.Code, http.StatusUnauthorized)
	}
}
