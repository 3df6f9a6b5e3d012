package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/news-service/internal/domain"
)

// Compile-time interface verification.
var _ UserRepository = (*PgUserRepository)(nil)

// PgUserRepository is a PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	db DBTX
}

// NewPgUserRepository creates a new PostgreSQL user repository.
func NewPgUserRepository(db DBTX) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// List retrieves all users.
func (r *PgUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, "SELECT username, name, avatar_url, liked_articles FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL, &u.LikedArticles); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetByUsername retrieves a single user by username.
func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := "SELECT username, name, avatar_url, liked_articles FROM users WHERE username = $1"

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Create inserts a new user and returns the stored row.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, name, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING username, name, avatar_url, liked_articles`

	created, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.Name, user.AvatarURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Update applies a partial update touching only the supplied fields.
func (r *PgUserRepository) Update(ctx context.Context, username string, patch *domain.UserPatch) (*domain.User, error) {
	query, args := buildUserPatchQuery(username, patch)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// CheckExists asserts that a user with the given username exists.
func (r *PgUserRepository) CheckExists(ctx context.Context, username string) error {
	var one int
	err := r.db.QueryRow(ctx, "SELECT 1 FROM users WHERE username = $1", username).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("user")
		}
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	return nil
}

// scanUser scans a single row into a User.
func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.Username, &u.Name, &u.AvatarURL, &u.LikedArticles); err != nil {
		return nil, err
	}
	return &u, nil
}
