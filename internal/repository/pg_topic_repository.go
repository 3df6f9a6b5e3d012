package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/news-service/internal/domain"
)

// Compile-time interface verification.
var _ TopicRepository = (*PgTopicRepository)(nil)

// PgTopicRepository is a PostgreSQL implementation of TopicRepository.
type PgTopicRepository struct {
	db DBTX
}

// NewPgTopicRepository creates a new PostgreSQL topic repository.
func NewPgTopicRepository(db DBTX) *PgTopicRepository {
	return &PgTopicRepository{db: db}
}

// List retrieves all topics.
func (r *PgTopicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	rows, err := r.db.Query(ctx, "SELECT slug, description, img_url FROM topics")
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Slug, &t.Description, &t.ImgURL); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics: %w", err)
	}

	return topics, nil
}

// Create inserts a new topic and returns the stored row.
func (r *PgTopicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	query := `
		INSERT INTO topics (slug, description, img_url)
		VALUES ($1, $2, $3)
		RETURNING slug, description, img_url`

	var created domain.Topic
	err := r.db.QueryRow(ctx, query, topic.Slug, topic.Description, topic.ImgURL).
		Scan(&created.Slug, &created.Description, &created.ImgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	return &created, nil
}

// CheckExists asserts that a topic with the given slug exists.
func (r *PgTopicRepository) CheckExists(ctx context.Context, slug string) error {
	var one int
	err := r.db.QueryRow(ctx, "SELECT 1 FROM topics WHERE slug = $1", slug).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("topic")
		}
		return fmt.Errorf("failed to check topic existence: %w", err)
	}
	return nil
}
