package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_NormalRequest(t *testing.T) {
	handler := New().Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
	req.Header.Set("Origin", "http://other.example.com")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %v, got %v", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow origin *, got %v", got)
	}
}

func TestMiddleware_NoOriginHeader(t *testing.T) {
	handler := New().Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow origin header, got %v", got)
	}
}

func TestMiddleware_DisallowedOrigin(t *testing.T) {
	handler := New(WithAllowedOrigins("http://allowed.example.com")).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow origin header, got %v", got)
	}
}

func TestMiddleware_AllowedOriginEchoed(t *testing.T) {
	handler := New(WithAllowedOrigins("http://allowed.example.com")).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
	req.Header.Set("Origin", "http://allowed.example.com")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.example.com" {
		t.Errorf("expected origin to be echoed, got %v", got)
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	handler := New(WithMaxAge(600)).Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "http://example.com/api", nil)
	req.Header.Set("Origin", "http://other.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %v, got %v", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("expected allow methods %v, got %v", http.MethodPost, got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "content-type" {
		t.Errorf("expected allow headers content-type, got %v", got)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("expected max age 600, got %v", got)
	}
}

func TestMiddleware_PreflightDisallowedHeader(t *testing.T) {
	handler := New(WithAllowedHeaders("Content-Type")).Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "http://example.com/api", nil)
	req.Header.Set("Origin", "http://other.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-secret")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %v, got %v", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow origin header, got %v", got)
	}
}
