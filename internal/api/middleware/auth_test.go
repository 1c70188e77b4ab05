package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talentpool/careers-portal/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (*domain.Session, error)
	calls     int
}

func (s *stubResolver) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	s.calls++
	return s.resolveFn(ctx, token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Session, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.Session{UserID: "u1", Email: "hr@example.com", Role: domain.RoleHR}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(resolver)
	handler := mw(func(c echo.Context) error {
		called = true
		sess, _ := c.Get(SessionKey).(*domain.Session)
		if sess == nil || sess.UserID != "u1" {
			t.Fatalf("session not set")
		}
		if role, _ := c.Get(RoleKey).(domain.Role); role != domain.RoleHR {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(resolver)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver must not run without a header")
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(resolver)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		resolveFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(resolver)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
