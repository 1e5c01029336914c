package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientContextUsesHeader(t *testing.T) {
	var got string
	handler := ClientContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Client-Id", "browser-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "browser-42" {
		t.Fatalf("expected client id from header, got %q", got)
	}
}

func TestClientContextFallsBackToDefault(t *testing.T) {
	var got string
	handler := ClientContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Client-Id", "   ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != DefaultClientID {
		t.Fatalf("expected default scope, got %q", got)
	}
}

func TestClientIDFromContextWithoutMiddleware(t *testing.T) {
	if got := ClientIDFromContext(context.Background()); got != DefaultClientID {
		t.Fatalf("expected default scope, got %q", got)
	}
}
