package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

func TestRequireAuth(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "cook@example.com"}
	auth := stubAuthenticator{users: map[string]*domain.User{"good": user}}

	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		got, ok := CurrentUser(c)
		if !ok || got.ID != user.ID {
			t.Fatalf("expected authenticated user in context")
		}
		if CurrentToken(c) != "good" {
			t.Fatalf("expected token in context, got %q", CurrentToken(c))
		}
		return c.NoContent(http.StatusNoContent)
	}, RequireAuth(auth))

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Token good", http.StatusUnauthorized},
		{"Bearer stale", http.StatusUnauthorized},
		{"Bearer good", http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if tc.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tc.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("header %q: expected %d, got %d", tc.header, tc.want, rec.Code)
		}
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	auth := stubAuthenticator{users: map[string]*domain.User{}}

	e := echo.New()
	e.GET("/public", func(c echo.Context) error {
		if _, ok := CurrentUser(c); ok {
			t.Fatalf("expected no user for anonymous request")
		}
		return c.NoContent(http.StatusNoContent)
	}, OptionalAuth(auth))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
