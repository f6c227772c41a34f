package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/auth"
)

const sessionTestSecret = "session-test-secret"

func sessionProbe(t *testing.T) (*echo.Echo, *auth.Claims) {
	t.Helper()
	var seen auth.Claims
	e := echo.New()
	e.GET("/probe", func(c echo.Context) error {
		claims, ok := CurrentClaims(c)
		if !ok {
			t.Fatal("claims missing after session middleware")
		}
		seen = claims
		return c.NoContent(http.StatusOK)
	}, Session(auth.NewVerifier(sessionTestSecret)))
	return e, &seen
}

func TestSessionMissingCookie(t *testing.T) {
	e, _ := sessionProbe(t)
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSessionInvalidCookie(t *testing.T) {
	e, _ := sessionProbe(t)
	for name, value := range map[string]string{
		"garbage": "not.a.jwt",
		"expired": expiredToken(t),
	} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: value})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}

func TestSessionValidCookie(t *testing.T) {
	e, seen := sessionProbe(t)
	token, _, err := auth.NewSessionToken(sessionTestSecret, "guest@example.com", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.Email != "guest@example.com" {
		t.Fatalf("claims.Email = %q, want guest@example.com", seen.Email)
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.NewSessionToken(sessionTestSecret, "guest@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return token
}
