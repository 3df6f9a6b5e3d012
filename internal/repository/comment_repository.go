package repository

import (
	"context"

	"github.com/pressroom/news-service/internal/domain"
)

// CommentRepository handles comment persistence, nested listings, vote
// adjustments, and deletion.
type CommentRepository interface {
	// ListByArticle retrieves the comments on an article, newest first.
	// The article identifier is bound as given; its existence is checked
	// out-of-band by the caller.
	ListByArticle(ctx context.Context, articleID string, params PageParams) ([]*domain.Comment, error)

	// Create inserts a new comment on an article and returns the stored row
	// with its generated identifier, timestamp, and defaulted votes.
	Create(ctx context.Context, articleID, username, body string) (*domain.Comment, error)

	// IncrementVotes adjusts a comment's votes by a signed delta, applied
	// atomically in a single statement, and returns the updated row.
	// Returns a not-found ClassifiedError if no matching comment exists.
	IncrementVotes(ctx context.Context, commentID string, delta int64) (*domain.Comment, error)

	// Delete removes a comment row permanently. A missing comment is not an
	// error here; callers gate on CheckExists concurrently.
	Delete(ctx context.Context, commentID string) error

	// CheckExists asserts that a comment with the given identifier exists.
	// Returns a not-found ClassifiedError otherwise.
	CheckExists(ctx context.Context, commentID string) error
}
