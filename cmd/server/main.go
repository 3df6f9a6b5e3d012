// Package main provides the entry point for the news service HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pressroom/news-service/internal/config"
	"github.com/pressroom/news-service/internal/database"
	"github.com/pressroom/news-service/internal/events"
	"github.com/pressroom/news-service/internal/observability"
	"github.com/pressroom/news-service/internal/repository"
	httpserver "github.com/pressroom/news-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("news-service server starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics registry.
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("news_service")
	}

	// Connect to PostgreSQL.
	db, err := database.New(ctx, &cfg.Database, logger, metrics)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info().Msg("database connection established")

	// Run migrations if configured.
	if cfg.Database.MigrationAutoRun {
		migrator, err := database.NewMigrator(db, cfg.Database.MigrationPath, logger)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer func() {
			if closeErr := migrator.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close migrator")
			}
		}()

		if err := migrator.Up(); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Create repositories.
	topicRepo := repository.NewPgTopicRepository(db)
	articleRepo := repository.NewPgArticleRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)
	userRepo := repository.NewPgUserRepository(db)

	// Lifecycle event publisher.
	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger, metrics)
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close event publisher")
			}
		}()
		publisher = kafkaPublisher
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publisher enabled")
	} else {
		publisher = events.NewNopPublisher()
	}

	httpCfg := httpserver.Config{
		Address:      cfg.Server.HTTPAddress(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	httpSrv := httpserver.NewServer(
		httpCfg,
		topicRepo,
		articleRepo,
		commentRepo,
		userRepo,
		db,
		publisher,
		metrics,
		cfg.RateLimit,
		logger,
	)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			logger.Info().Str("address", metricsServer.Addr).Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	// Shut both servers down when the signal context or a sibling fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down news-service")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("metrics server shutdown error")
			}
		}
		return nil
	})

	logger.Info().Str("http_address", httpCfg.Address).Msg("news-service is ready")

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("news-service shutdown complete")
	return nil
}
