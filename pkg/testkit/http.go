package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/middleware"
)

// Envelope mirrors the JSON response body every handler writes.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Request builds an *http.Request with an optional JSON body.
func Request(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("testkit: encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// AsUser attaches authenticated claims to the request, the same way the
// Authenticate middleware would after validating a token.
func AsUser(req *http.Request, userID uint, role string) *http.Request {
	claims := &auth.Claims{UserID: userID, Role: role}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

// Do runs the handler against the request and decodes the response envelope.
func Do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("testkit: decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

// DecodeData unmarshals the envelope's data field into dest.
func DecodeData(t *testing.T, env Envelope, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("testkit: decode data %q: %v", string(env.Data), err)
	}
}
