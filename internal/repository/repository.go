// Package repository provides data access interfaces and implementations
// for the news service.
//
// # Overview
//
// This package defines repository interfaces and their PostgreSQL implementations
// following the repository pattern to abstract data persistence from handlers.
//
// # Repository Interfaces
//
// The package provides the following repository interfaces:
//
//   - TopicRepository: Manages topics and topic existence checks
//   - UserRepository: Manages users, registration, and partial updates
//   - ArticleRepository: Manages articles, listings, and vote adjustments
//   - CommentRepository: Manages comments, nested listings, and deletion
//
// # Query Construction
//
// Listing queries are composed dynamically from client-supplied parameters.
// Sort columns and directions are validated against fixed whitelists before
// being concatenated into query text; every other client-controlled value is
// bound as a parameter, never interpolated.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple goroutines.
// The underlying pgxpool handles connection pooling and synchronization.
//
// # Error Handling
//
// Methods translate pgx.ErrNoRows into *domain.ClassifiedError not-found
// failures carrying the entity name. Storage-level constraint errors
// (unique violations, invalid text representation) are wrapped with %w and
// passed through unchanged so the HTTP boundary can classify them by
// PostgreSQL error code.
//
// # Usage Pattern
//
// Repositories are typically created at application startup and passed to handlers:
//
//	db, _ := database.New(ctx, cfg, logger, metrics)
//	topicRepo := repository.NewPgTopicRepository(db)
//	articleRepo := repository.NewPgArticleRepository(db)
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pressroom/news-service/internal/database"
)

// DBTX is the database interface supporting both pool and transaction contexts.
// This allows repositories to work with both direct pool connections and transactions.
type DBTX = database.DBTX

// PostgreSQL error codes used for constraint violation detection.
const (
	pgUniqueViolation     = "23505" // unique_violation
	pgInvalidTextRepr     = "22P02" // invalid_text_representation
	pgForeignKeyViolation = "23503" // foreign_key_violation
)

// Pagination defaults applied when only one of limit/p is supplied.
const (
	defaultPageSize = 10
	defaultPage     = 1
)

// IsUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsInvalidTextRepresentation reports whether the error is a PostgreSQL
// invalid text representation error, which surfaces when a malformed
// identifier (e.g. a non-numeric article id) reaches a typed column.
func IsInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgInvalidTextRepr
	}
	return false
}
