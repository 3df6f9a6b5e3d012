package repository

import (
	"context"

	"github.com/pressroom/news-service/internal/domain"
)

// TopicRepository handles topic persistence and existence checks.
type TopicRepository interface {
	// List retrieves all topics.
	List(ctx context.Context) ([]*domain.Topic, error)

	// Create inserts a new topic and returns the stored row.
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)

	// CheckExists asserts that a topic with the given slug exists.
	// Returns a not-found ClassifiedError otherwise.
	CheckExists(ctx context.Context, slug string) error
}
