package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/constants"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	req, err := http.NewRequest(http.MethodGet, "/api/v1/test", nil)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	ctx.Request = req
	return ctx, recorder
}

func TestRequestIDMiddlewareGenerates(t *testing.T) {
	ctx, recorder := newTestContext(t)

	RequestIDMiddleware()(ctx)

	requestID := ctx.GetString("request_id")
	if requestID == "" {
		t.Fatalf("expected generated request id")
	}
	if got := recorder.Header().Get("X-Request-ID"); got != requestID {
		t.Fatalf("expected header %q, got %q", requestID, got)
	}
}

func TestRequestIDMiddlewareHonorsHeader(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Request.Header.Set("X-Request-ID", "incoming-id")

	RequestIDMiddleware()(ctx)

	if got := ctx.GetString("request_id"); got != "incoming-id" {
		t.Fatalf("expected incoming-id, got %q", got)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header   string
		expected string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
		{"Bearer   padded  ", "padded"},
	}
	for _, tc := range cases {
		ctx, _ := newTestContext(t)
		if tc.header != "" {
			ctx.Request.Header.Set("Authorization", tc.header)
		}
		if got := extractBearerToken(ctx); got != tc.expected {
			t.Fatalf("header %q: expected %q, got %q", tc.header, tc.expected, got)
		}
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		role    string
		minRole string
		allowed bool
	}{
		{constants.RoleOwner, constants.RoleOwner, true},
		{constants.RoleCashier, constants.RoleOwner, false},
		{constants.RoleCashier, constants.RoleCashier, true},
		{constants.RoleSalesAssociate, constants.RoleCashier, false},
		{"", constants.RoleSalesAssociate, true},
	}
	for _, tc := range cases {
		ctx, recorder := newTestContext(t)
		ctx.Set("role", tc.role)

		RequireRole(tc.minRole)(ctx)

		if tc.allowed {
			if ctx.IsAborted() {
				t.Fatalf("role %q min %q: expected pass, got abort", tc.role, tc.minRole)
			}
		} else {
			if !ctx.IsAborted() {
				t.Fatalf("role %q min %q: expected abort", tc.role, tc.minRole)
			}
			if recorder.Code != http.StatusForbidden {
				t.Fatalf("role %q min %q: expected 403, got %d", tc.role, tc.minRole, recorder.Code)
			}
		}
	}
}

func TestResolveAllowedOrigin(t *testing.T) {
	cfg := &config.CORSConfig{AllowedOrigins: []string{"https://pos.example.com"}}
	if got := resolveAllowedOrigin(cfg, "https://POS.example.com"); got != "https://POS.example.com" {
		t.Fatalf("expected case-insensitive origin match, got %q", got)
	}
	if got := resolveAllowedOrigin(cfg, "https://evil.example.com"); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}

	wildcard := &config.CORSConfig{AllowedOrigins: []string{"*"}}
	if got := resolveAllowedOrigin(wildcard, "https://anything.example.com"); got != "*" {
		t.Fatalf("expected wildcard, got %q", got)
	}
}
