package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandlerMapsDomainKinds(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrNoContent, http.StatusNoContent},
		{domain.ErrNotModified, http.StatusNotModified},
		{domain.ErrBadRequest, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := handleError(t, fmt.Errorf("some operation: %w", tc.err))
		if rec.Code != tc.wantCode {
			t.Errorf("%v mapped to %d, want %d", tc.err, rec.Code, tc.wantCode)
		}
	}
}

func TestErrorHandlerBodylessStatuses(t *testing.T) {
	for _, err := range []error{domain.ErrNoContent, domain.ErrNotModified} {
		rec := handleError(t, err)
		if rec.Body.Len() != 0 {
			t.Errorf("%v produced a body: %q", err, rec.Body.String())
		}
	}
}

func TestErrorHandlerUnexpectedErrorIsOpaque(t *testing.T) {
	rec := handleError(t, errors.New("connection refused to mongodb://internal-host"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "internal-host") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestErrorHandlerPassesThroughEchoErrors(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusUnsupportedMediaType, "bad content type"))

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
}
