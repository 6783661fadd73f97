package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorEnvelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrBlogNotFound, http.StatusNotFound},
		{domain.ErrCommentNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrUploadFailed, http.StatusBadGateway},
	}

	for _, tc := range cases {
		code, body := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.code, code)
		}
		if body.StatusCode != tc.code {
			t.Fatalf("%v: envelope statusCode %d does not match status %d", tc.err, body.StatusCode, tc.code)
		}
		if body.Message == "" {
			t.Fatalf("%v: empty message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: thumbnail is required", domain.ErrInvalidInput)
	code, body := renderError(t, wrapped)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrapped sentinel, got %d", code)
	}
	if body.Message != wrapped.Error() {
		t.Fatalf("expected the wrapped message, got %q", body.Message)
	}
}

func TestErrorHandler_EchoError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("expected echo error code to pass through, got %d", code)
	}
	if body.Message != "short and stout" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", body.Message)
	}
}
