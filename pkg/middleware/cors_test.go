package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/favourfurniture/storefront/pkg/middleware"
)

func corsHandler(opts middleware.CORSOptions) http.Handler {
	return middleware.CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSEchoesAllowedOriginWithCredentials(t *testing.T) {
	opts := middleware.CORSOptions{
		AllowedOrigins: []string{"https://shop.favourfurniture.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.favourfurniture.com")
	rec := httptest.NewRecorder()
	corsHandler(opts).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.favourfurniture.com" {
		t.Errorf("Allow-Origin = %q, want the request origin echoed back", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true (cookie auth)", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}

func TestCORSWildcardStillEchoesOrigin(t *testing.T) {
	opts := middleware.CORSOptions{AllowedOrigins: []string{"*"}}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	corsHandler(opts).ServeHTTP(rec, req)

	// A literal "*" would make browsers reject the credentialed response.
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q, want the request origin echoed back", got)
	}
}

func TestCORSIgnoresDisallowedOrigin(t *testing.T) {
	opts := middleware.CORSOptions{AllowedOrigins: []string{"https://shop.favourfurniture.com"}}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	corsHandler(opts).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want unset for a disallowed origin", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (request still served, browser enforces)", rec.Code)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	opts := middleware.CORSOptions{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"PUT"}, MaxAge: 300}

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	corsHandler(opts).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "300" {
		t.Errorf("Max-Age = %q, want 300", got)
	}
}
