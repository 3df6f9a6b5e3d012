package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/news-service/internal/domain"
)

// Compile-time interface verification.
var _ ArticleRepository = (*PgArticleRepository)(nil)

// PgArticleRepository is a PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db DBTX
}

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

// List retrieves article summaries matching the listing parameters.
func (r *PgArticleRepository) List(ctx context.Context, params ArticleListParams) ([]*domain.ArticleSummary, error) {
	query, args, err := buildArticleListQuery(params)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.ArticleSummary, 0)
	for rows.Next() {
		var s domain.ArticleSummary
		if err := rows.Scan(
			&s.ArticleID, &s.Title, &s.Topic, &s.Author,
			&s.CreatedAt, &s.Votes, &s.ArticleImgURL, &s.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article summary: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return summaries, nil
}

// GetByID retrieves a single article by its identifier.
func (r *PgArticleRepository) GetByID(ctx context.Context, articleID string) (*domain.Article, error) {
	query := `
		SELECT article_id, title, topic, author, body, created_at, votes, article_img_url
		FROM articles
		WHERE article_id = $1`

	article, err := scanArticle(r.db.QueryRow(ctx, query, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article id")
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// Create inserts a new article and returns the stored row.
func (r *PgArticleRepository) Create(ctx context.Context, article *domain.NewArticle) (*domain.Article, error) {
	query := `
		INSERT INTO articles (title, topic, author, body, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url`

	created, err := scanArticle(r.db.QueryRow(ctx, query,
		article.Title, article.Topic, article.Author, article.Body, article.ArticleImgURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return created, nil
}

// IncrementVotes adjusts an article's votes by a signed delta in a single
// atomic statement and returns the updated row.
func (r *PgArticleRepository) IncrementVotes(ctx context.Context, articleID string, delta int64) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url`

	article, err := scanArticle(r.db.QueryRow(ctx, query, delta, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article id")
		}
		return nil, fmt.Errorf("failed to increment article votes: %w", err)
	}

	return article, nil
}

// CheckExists asserts that an article with the given identifier exists.
func (r *PgArticleRepository) CheckExists(ctx context.Context, articleID string) error {
	var one int
	err := r.db.QueryRow(ctx, "SELECT 1 FROM articles WHERE article_id = $1", articleID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("article id")
		}
		return fmt.Errorf("failed to check article existence: %w", err)
	}
	return nil
}

// scanArticle scans a single row into an Article.
func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	if err := row.Scan(
		&a.ArticleID, &a.Title, &a.Topic, &a.Author,
		&a.Body, &a.CreatedAt, &a.Votes, &a.ArticleImgURL,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
