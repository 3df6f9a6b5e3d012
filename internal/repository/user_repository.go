package repository

import (
	"context"

	"github.com/pressroom/news-service/internal/domain"
)

// UserRepository handles user persistence, registration, and partial updates.
type UserRepository interface {
	// List retrieves all users.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByUsername retrieves a single user by username.
	// Returns a not-found ClassifiedError if no matching user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a new user and returns the stored row. A duplicate
	// username surfaces as a storage-level unique violation, wrapped and
	// passed through for classification at the boundary.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update applies a partial update touching only the fields the patch
	// supplies, and returns the updated row. The patch must not be empty.
	// Returns a not-found ClassifiedError if no matching user exists.
	Update(ctx context.Context, username string, patch *domain.UserPatch) (*domain.User, error)

	// CheckExists asserts that a user with the given username exists.
	// Returns a not-found ClassifiedError otherwise.
	CheckExists(ctx context.Context, username string) error
}
