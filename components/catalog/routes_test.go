package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := map[string]string{
		"":       "/api/options/",
		"/":      "/api/options/",
		"/admin": "/admin/api/options/",
		"admin/": "/admin/api/options/",
		" /v1/ ": "/v1/api/options/",
	}
	for base, want := range cases {
		if got := mountPath(base); got != want {
			t.Fatalf("mountPath(%q): expected %q, got %q", base, want, got)
		}
	}
}

func TestRegisterRoutes_RegistersSubtreeHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New().RegisterRoutes(mux, "/v1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/v1/api/options/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/api/options/transmissions?q=man", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_EmptyBaseServesAPIPath(t *testing.T) {
	mux := http.NewServeMux()
	if _, err := New().RegisterRoutes(mux, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options/fuel_types", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_RequiresMux(t *testing.T) {
	if _, err := New().RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected missing mux error")
	}
}

func TestClampLimit(t *testing.T) {
	cases := map[int]int{-1: 0, 0: defaultLimit, 5: 5, maxLimit + 1: maxLimit}
	for in, want := range cases {
		if got := clampLimit(in); got != want {
			t.Fatalf("clamp(%d): expected %d, got %d", in, want, got)
		}
	}
}
