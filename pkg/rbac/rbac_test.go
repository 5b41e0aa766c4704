package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/rbac"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(role string, userID uint) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := middleware.WithClaims(req.Context(), &auth.Claims{UserID: userID, Role: role})
	return req.WithContext(ctx)
}

func TestHasRoleAllowsMatchingRole(t *testing.T) {
	rec := httptest.NewRecorder()
	rbac.HasRole("admin")(okHandler()).ServeHTTP(rec, requestAs("admin", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHasRoleForbidsOtherRoles(t *testing.T) {
	rec := httptest.NewRecorder()
	rbac.HasRole("admin")(okHandler()).ServeHTTP(rec, requestAs("customer", 1))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHasRoleForbidsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rbac.HasRole("admin")(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGuestAllowsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rbac.Guest(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGuestBlocksAuthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	rbac.Guest(okHandler()).ServeHTTP(rec, requestAs("customer", 9))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
