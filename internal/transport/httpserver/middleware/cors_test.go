package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(handler http.Handler, method, origin string, preflight bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/transactions", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := NewCORS([]string{" http://localhost:3000/ ", ""})(next)

	rec := corsRequest(handler, http.MethodGet, "http://localhost:3000", false)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected request to pass through, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials to be allowed")
	}
	if rec.Header().Get("Access-Control-Expose-Headers") != "X-Request-Id" {
		t.Fatalf("expected request id to be exposed")
	}

	rec = corsRequest(handler, http.MethodOptions, "http://localhost:3000", true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("expected allow methods on preflight")
	}

	rec = corsRequest(handler, http.MethodGet, "http://evil.example", false)
	if rec.Code != http.StatusTeapot || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected response for foreign origin: %d %v", rec.Code, rec.Header())
	}

	rec = corsRequest(handler, http.MethodOptions, "http://evil.example", true)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("foreign preflight must not be allowed: %d %v", rec.Code, rec.Header())
	}

	rec = corsRequest(handler, http.MethodOptions, "", false)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("plain OPTIONS without origin should reach the router, got %d", rec.Code)
	}
}

func TestCORSWildcard(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := NewCORS([]string{"*"})(next)

	rec := corsRequest(handler, http.MethodGet, "https://app.example.com", false)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected origin echoed for wildcard, got %q", got)
	}
}
