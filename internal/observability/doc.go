// Package observability provides logging and metrics support for the news
// service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for HTTP traffic, database queries, and entity lifecycle
//   - Context helpers for propagating request identifiers
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "stdout",
//	    AddSource: true,
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("article created")
//
// Add request context to logger:
//
//	logger = observability.WithRequestContext(logger, requestID, method, path)
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("news_service")
//
// Record metrics:
//
//	metrics.RecordHTTPRequest("GET", "/api/articles", "200", 0.012)
//	metrics.RecordArticleCreated()
//
// # Context Helpers
//
// Store and retrieve request context:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - article_id: Article identifier
//   - username: User identifier
//   - topic: Topic slug
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
