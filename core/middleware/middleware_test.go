package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventrely-api/core/constants"

	"github.com/labstack/echo/v4"
)

func newServer() *echo.Echo {
	e := echo.New()
	NewMiddleware(nil).Setup(e)
	e.GET("/id", func(c echo.Context) error {
		return c.String(http.StatusOK, RequestIDFrom(c))
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	return e
}

func TestRequestIDGenerated(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/id", nil))

	id := rec.Header().Get(constants.HeaderRequestID)
	if len(id) != constants.RequestIDLength {
		t.Fatalf("expected generated request id, got %q", id)
	}
	if rec.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", rec.Body.String(), id)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	e := newServer()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(constants.HeaderRequestID, "caller-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(constants.HeaderRequestID); got != "caller-id" {
		t.Fatalf("expected caller-id, got %q", got)
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	e := newServer()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Fatalf("expected *, got %q", got)
	}
}
