package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pressroom/news-service/internal/config"
	"github.com/pressroom/news-service/internal/observability"
)

// correlationIDMiddleware ensures every request carries a correlation ID.
// An inbound X-Request-ID is honored; otherwise one is generated.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := observability.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// jsonContentTypeMiddleware sets Content-Type: application/json for all responses.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestLoggerMiddleware logs each completed request and records HTTP
// metrics keyed by the matched route pattern rather than the raw path.
func requestLoggerMiddleware(logger zerolog.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			reqLogger := observability.WithRequestContext(
				logger,
				observability.RequestIDFromContext(r.Context()),
				r.Method,
				r.URL.Path,
			)
			reqLogger.Info().
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Msg("request completed")

			if metrics != nil {
				metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), duration.Seconds())
			}
		})
	}
}

// rateLimitMiddleware applies a shared token-bucket limiter across all
// requests. Rejected requests are counted and answered with 429.
func rateLimitMiddleware(cfg config.RateLimitConfig, metrics *observability.Metrics) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.RecordHTTPRequestRejected()
				}
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
