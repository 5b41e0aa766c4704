package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/favourfurniture/storefront/pkg/bind"
)

type statusInput struct {
	Status string `json:"status" validate:"required,in=pending,processing,shipped,delivered,cancelled"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSONDecodesAndValidates(t *testing.T) {
	var in statusInput
	errs, err := bind.JSON(jsonRequest(`{"status":"shipped"}`), &in)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if in.Status != "shipped" {
		t.Errorf("status = %q, want shipped", in.Status)
	}
}

func TestJSONReturnsRuleFailures(t *testing.T) {
	var in statusInput
	errs, err := bind.JSON(jsonRequest(`{"status":"teleported"}`), &in)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, ok := errs["status"]; !ok {
		t.Errorf("expected a status rule failure, got: %v", errs)
	}
}

func TestJSONRejectsEmptyBody(t *testing.T) {
	var in statusInput
	if _, err := bind.JSON(jsonRequest(""), &in); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	var in statusInput
	if _, err := bind.JSON(jsonRequest(`{"status":`), &in); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestJSONRejectsTrailingData(t *testing.T) {
	var in statusInput
	if _, err := bind.JSON(jsonRequest(`{"status":"shipped"}{"status":"delivered"}`), &in); err == nil {
		t.Error("expected error for trailing data")
	}
}
