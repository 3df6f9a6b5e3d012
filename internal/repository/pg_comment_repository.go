package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/news-service/internal/domain"
)

// Compile-time interface verification.
var _ CommentRepository = (*PgCommentRepository)(nil)

// PgCommentRepository is a PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	db DBTX
}

// NewPgCommentRepository creates a new PostgreSQL comment repository.
func NewPgCommentRepository(db DBTX) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// ListByArticle retrieves the comments on an article, newest first.
func (r *PgCommentRepository) ListByArticle(ctx context.Context, articleID string, params PageParams) ([]*domain.Comment, error) {
	query, args, err := buildCommentListQuery(articleID, params)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.CommentID, &c.ArticleID, &c.Body, &c.Votes, &c.Author, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Create inserts a new comment on an article and returns the stored row.
func (r *PgCommentRepository) Create(ctx context.Context, articleID, username, body string) (*domain.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, article_id, body, votes, author, created_at`

	comment, err := scanComment(r.db.QueryRow(ctx, query, articleID, username, body))
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// IncrementVotes adjusts a comment's votes by a signed delta in a single
// atomic statement and returns the updated row.
func (r *PgCommentRepository) IncrementVotes(ctx context.Context, commentID string, delta int64) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, article_id, body, votes, author, created_at`

	comment, err := scanComment(r.db.QueryRow(ctx, query, delta, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("comment id")
		}
		return nil, fmt.Errorf("failed to increment comment votes: %w", err)
	}

	return comment, nil
}

// Delete removes a comment row permanently.
func (r *PgCommentRepository) Delete(ctx context.Context, commentID string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM comments WHERE comment_id = $1", commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// CheckExists asserts that a comment with the given identifier exists.
func (r *PgCommentRepository) CheckExists(ctx context.Context, commentID string) error {
	var one int
	err := r.db.QueryRow(ctx, "SELECT 1 FROM comments WHERE comment_id = $1", commentID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("comment id")
		}
		return fmt.Errorf("failed to check comment existence: %w", err)
	}
	return nil
}

// scanComment scans a single row into a Comment.
func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(
		&c.CommentID, &c.ArticleID, &c.Body, &c.Votes, &c.Author, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
