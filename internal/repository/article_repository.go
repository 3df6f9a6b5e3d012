package repository

import (
	"context"

	"github.com/pressroom/news-service/internal/domain"
)

// ArticleRepository handles article persistence, listings, and vote adjustments.
type ArticleRepository interface {
	// List retrieves article summaries matching the listing parameters.
	// Sort column and direction are validated against fixed whitelists;
	// limit and p must be integer strings when supplied.
	// Returns a *domain.ClassifiedError for any invalid parameter.
	List(ctx context.Context, params ArticleListParams) ([]*domain.ArticleSummary, error)

	// GetByID retrieves a single article by its identifier.
	// The identifier is bound as given; a malformed value surfaces as a
	// storage-level invalid text representation error.
	// Returns a not-found ClassifiedError if no matching article exists.
	GetByID(ctx context.Context, articleID string) (*domain.Article, error)

	// Create inserts a new article and returns the stored row with its
	// generated identifier, timestamp, and defaulted votes.
	Create(ctx context.Context, article *domain.NewArticle) (*domain.Article, error)

	// IncrementVotes adjusts an article's votes by a signed delta, applied
	// atomically in a single statement, and returns the updated row.
	// Returns a not-found ClassifiedError if no matching article exists.
	IncrementVotes(ctx context.Context, articleID string, delta int64) (*domain.Article, error)

	// CheckExists asserts that an article with the given identifier exists.
	// Returns a not-found ClassifiedError otherwise.
	CheckExists(ctx context.Context, articleID string) error
}

// ArticleListParams carries the raw, untrusted listing parameters as they
// arrived on the query string. Empty strings mean "not supplied".
type ArticleListParams struct {
	// SortBy is the sort column (default created_at).
	SortBy string

	// Order is the sort direction, asc or desc case-insensitively (default desc).
	Order string

	// Topic is an optional equality filter on the article topic.
	Topic string

	// Limit is the page size as an integer string.
	Limit string

	// Page is the 1-based page number as an integer string.
	Page string
}

// PageParams carries raw pagination parameters for nested listings.
type PageParams struct {
	// Limit is the page size as an integer string.
	Limit string

	// Page is the 1-based page number as an integer string.
	Page string
}
