package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// AuthService implements registration and login over the users table.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	// Login authenticates by email and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
