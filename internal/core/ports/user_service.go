package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// ReplaceUserInput carries the full replacement state for a user. All four
// fields are required; this is a PUT-style full replace, not a patch.
type ReplaceUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UserService defines the mutation and query operations for users.
type UserService interface {
	ReplaceUser(ctx context.Context, id int64, input ReplaceUserInput) (*domain.User, error)
	// ListUsers returns active users, newest first. A non-empty usernameFilter
	// restricts the result to usernames containing the filter (substring, not
	// prefix).
	ListUsers(ctx context.Context, usernameFilter string) ([]domain.User, error)
	// GetProfile returns the caller's own active row, re-validating the stored
	// email shape against current rules.
	GetProfile(ctx context.Context, callerID int64) (*domain.User, error)
}
