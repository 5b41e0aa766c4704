package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/middleware"
)

func captureClaims(got **auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = middleware.ClaimsFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentifyResolvesValidCredential(t *testing.T) {
	token, err := auth.GenerateToken(7, "customer", "ada@example.com", "Ada")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got *auth.Claims
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware.Identify(captureClaims(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.UserID != 7 {
		t.Fatalf("claims = %+v, want user 7", got)
	}
}

func TestIdentifyPassesAnonymousThrough(t *testing.T) {
	var got *auth.Claims
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	middleware.Identify(captureClaims(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got != nil {
		t.Fatalf("claims = %+v, want anonymous", got)
	}
}

func TestAuthenticateRejectsMissingCredential(t *testing.T) {
	var got *auth.Claims
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	middleware.Authenticate(captureClaims(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got != nil {
		t.Fatal("handler must not run without a credential")
	}
}

func TestAuthenticateRejectsCookieWithBadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	var got *auth.Claims
	middleware.Authenticate(captureClaims(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
