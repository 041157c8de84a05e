package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. All reads exclude
// soft-deleted rows.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrUsernameTaken or
	// domain.ErrEmailTaken when a store-level uniqueness constraint rejects
	// the write.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// FindByID returns the active user with the given id or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail returns the active user with the given email or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsActive reports whether an active user with the given id exists.
	ExistsActive(ctx context.Context, id int64) (bool, error)
	// UsernameClaimed reports whether an active user other than excludeID
	// already holds username.
	UsernameClaimed(ctx context.Context, username string, excludeID int64) (bool, error)
	// EmailClaimed reports whether an active user other than excludeID already
	// holds email.
	EmailClaimed(ctx context.Context, email string, excludeID int64) (bool, error)
	// Replace overwrites all mutable fields and touches updated_at.
	Replace(ctx context.Context, id int64, username, email, password, role string) error
	// List returns active users, newest first, optionally filtered to
	// usernames containing usernameFilter.
	List(ctx context.Context, usernameFilter string) ([]domain.User, error)
}
