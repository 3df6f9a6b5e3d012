// Package httpserver provides the HTTP REST API server for the news service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pressroom/news-service/internal/config"
	"github.com/pressroom/news-service/internal/database"
	"github.com/pressroom/news-service/internal/events"
	"github.com/pressroom/news-service/internal/observability"
	"github.com/pressroom/news-service/internal/repository"
)

// Server is the HTTP REST API server.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	topicRepo   repository.TopicRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	db          *database.DB
	publisher   events.Publisher
	metrics     *observability.Metrics
	validate    *validator.Validate
	logger      zerolog.Logger
	rateLimit   config.RateLimitConfig
}

// Config holds HTTP server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	topicRepo repository.TopicRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	db *database.DB,
	publisher events.Publisher,
	metrics *observability.Metrics,
	rateLimit config.RateLimitConfig,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		topicRepo:   topicRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		db:          db,
		publisher:   publisher,
		metrics:     metrics,
		validate:    newValidator(),
		logger:      logger.With().Str("component", "http-server").Logger(),
		rateLimit:   rateLimit,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// newValidator builds the request-body validator with the notblank rule
// used by the create endpoints.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)
	r.Use(requestLoggerMiddleware(s.logger, s.metrics))
	if s.rateLimit.Enabled {
		r.Use(rateLimitMiddleware(s.rateLimit, s.metrics))
	}

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.getEndpoints)

		r.Get("/topics", s.getTopics)
		r.Post("/topics", s.postTopic)

		r.Get("/articles", s.getArticles)
		r.Post("/articles", s.postArticle)
		r.Get("/articles/{article_id}", s.getArticleByID)
		r.Patch("/articles/{article_id}", s.patchArticle)
		r.Get("/articles/{article_id}/comments", s.getCommentsByArticle)
		r.Post("/articles/{article_id}/comments", s.postCommentForArticle)

		r.Patch("/comments/{comment_id}", s.patchComment)
		r.Delete("/comments/{comment_id}", s.deleteComment)

		r.Get("/users", s.getUsers)
		r.Post("/users", s.postUser)
		r.Get("/users/{username}", s.getUserByUsername)
		r.Patch("/users/{username}", s.patchUser)
	})

	// Unknown routes and methods share the same failure envelope.
	r.NotFound(invalidURLHandler)
	r.MethodNotAllowed(invalidURLHandler)

	return r
}

// invalidURLHandler answers every unmatched route.
func invalidURLHandler(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Invalid url!")
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler returns readiness status.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// publish emits a lifecycle event after a successful mutation. Failures are
// handled inside the publisher; nothing here reaches the client.
func (s *Server) publish(ctx context.Context, entity, action, key string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.Event{
		Entity:     entity,
		Action:     action,
		Key:        key,
		OccurredAt: time.Now().UTC(),
	})
}
