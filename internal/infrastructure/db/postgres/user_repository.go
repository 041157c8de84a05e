package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

const userColumns = `id, username, email, password, role, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	const query = `
		INSERT INTO users (username, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		u.Username, u.Email, u.Password, u.Role, u.CreatedAt, u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_username_active_idx"):
			return nil, domain.ErrUsernameTaken
		case isUniqueViolation(err, "users_email_active_idx"):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UsernameClaimed(ctx context.Context, username string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM users WHERE username = $1 AND id <> $2 AND deleted_at IS NULL)`
	var claimed bool
	if err := r.pool.QueryRow(ctx, query, username, excludeID).Scan(&claimed); err != nil {
		return false, fmt.Errorf("username claimed: %w", err)
	}
	return claimed, nil
}

func (r *UserRepository) EmailClaimed(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM users WHERE email = $1 AND id <> $2 AND deleted_at IS NULL)`
	var claimed bool
	if err := r.pool.QueryRow(ctx, query, email, excludeID).Scan(&claimed); err != nil {
		return false, fmt.Errorf("email claimed: %w", err)
	}
	return claimed, nil
}

func (r *UserRepository) Replace(ctx context.Context, id int64, username, email, password, role string) error {
	const query = `
		UPDATE users
		SET username = $1, email = $2, password = $3, role = $4, updated_at = now()
		WHERE id = $5 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, username, email, password, role, id)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_username_active_idx"):
			return domain.ErrUsernameTaken
		case isUniqueViolation(err, "users_email_active_idx"):
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("replace user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, usernameFilter string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`
	var args []any
	if usernameFilter != "" {
		query += ` AND username ILIKE '%' || $1 || '%'`
		args = append(args, usernameFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
