package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/response"
)

// CookieName is the cookie the storefront issues at login. Browser clients
// authenticate with it; API clients may send Authorization: Bearer instead.
const CookieName = "token"

type claimsKey struct{}

// credential pulls the raw token from the Authorization header or cookie.
func credential(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Identify resolves the request credential to an identity when one is
// present and valid, and lets the request through anonymously otherwise.
// Public routes use this so templates/data can reflect a logged-in user.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := credential(r); token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate rejects the request with 401 unless a valid credential
// resolves to an identity.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := credential(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithClaims attaches an identity directly to the context, bypassing token
// validation. Tests use it to simulate an authenticated request.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromCtx returns the resolved identity, or nil for anonymous requests.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// UserIDFromCtx returns the authenticated user id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	if claims := ClaimsFromCtx(r.Context()); claims != nil {
		return claims.UserID, true
	}
	return 0, false
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	if claims := ClaimsFromCtx(r.Context()); claims != nil {
		return claims.Role, true
	}
	return "", false
}
