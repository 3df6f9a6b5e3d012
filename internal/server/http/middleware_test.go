package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pressroom/news-service/internal/config"
	"github.com/pressroom/news-service/internal/observability"
)

func TestCorrelationIDMiddleware_UsesExistingHeader(t *testing.T) {
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := observability.RequestIDFromContext(r.Context())
		if requestID != "req-123" {
			t.Errorf("expected request ID req-123, got %s", requestID)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "req-123" {
		t.Errorf("expected X-Request-ID header to echo req-123, got %s", rr.Header().Get("X-Request-ID"))
	}
}

func TestCorrelationIDMiddleware_GeneratesID(t *testing.T) {
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if observability.RequestIDFromContext(r.Context()) == "" {
			t.Error("expected a generated request ID in the context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID header")
	}
}

func TestJSONContentTypeMiddleware(t *testing.T) {
	handler := jsonContentTypeMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api", nil))

	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %s", got)
	}
}

func TestRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}
	handler := rateLimitMiddleware(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/topics", nil))
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be rejected, got %v", codes)
	}
}

func TestRequestLoggerMiddleware_PassesThrough(t *testing.T) {
	handler := requestLoggerMiddleware(zerolog.Nop(), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected handler status to pass through, got %d", rr.Code)
	}
}
