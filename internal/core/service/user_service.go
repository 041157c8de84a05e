package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// UserService orchestrates the guarded mutations and projections for users.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ReplaceUser overwrites all mutable fields of one user (PUT semantics).
// Ordering: missing fields → role enum → email shape → target exists →
// username not claimed → email not claimed → write.
func (s *UserService) ReplaceUser(ctx context.Context, id int64, input ports.ReplaceUserInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidEmail(input.Email) {
		return nil, domain.ErrInvalidEmail
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	taken, err := s.users.UsernameClaimed(ctx, input.Username, id)
	if err != nil {
		return nil, fmt.Errorf("username check: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.EmailClaimed(ctx, input.Email, id)
	if err != nil {
		return nil, fmt.Errorf("email check: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.Replace(ctx, id, input.Username, input.Email, string(hash), input.Role); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to replace user")
		return nil, fmt.Errorf("replace user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("user replaced")
	return s.users.FindByID(ctx, id)
}

// ListUsers returns active users, newest first, optionally filtered to
// usernames containing usernameFilter.
func (s *UserService) ListUsers(ctx context.Context, usernameFilter string) ([]domain.User, error) {
	return s.users.List(ctx, usernameFilter)
}

// GetProfile resolves the caller's own active row and re-validates the stored
// email shape. Rows written before the current validation rules can fail that
// check; the caller gets a "stored data invalid" error, not a not-found.
func (s *UserService) GetProfile(ctx context.Context, callerID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidEmail(user.Email) {
		s.logger.Warn().Int64("user_id", callerID).Msg("stored email fails current validation")
		return nil, domain.ErrStoredEmailInvalid
	}
	return user, nil
}
