package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// clientColumns is the joined projection every client read returns: the
// client row plus the owning user's username and the owning company's name.
const clientColumns = `
	c.id, c.name, c.email, c.phone, c.user_id, c.company_id,
	c.created_at, c.updated_at,
	u.username, co.name`

const clientFrom = `
	FROM clients c
	JOIN users u ON u.id = c.user_id
	JOIN companies co ON co.id = c.company_id`

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*ports.ClientJoined, error) {
	const query = `
		INSERT INTO clients (name, email, phone, user_id, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.UserID, c.CompanyID, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "clients_company_active_idx") {
			return nil, domain.ErrCompanyAssigned
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*ports.ClientJoined, error) {
	query := `SELECT` + clientColumns + clientFrom + `
		WHERE c.id = $1 AND c.deleted_at IS NULL`
	row := r.pool.QueryRow(ctx, query, id)
	return scanClient(row)
}

func (r *ClientRepository) List(ctx context.Context) ([]ports.ClientJoined, error) {
	query := `SELECT` + clientColumns + clientFrom + `
		WHERE c.deleted_at IS NULL
		ORDER BY c.created_at DESC`
	return r.queryClients(ctx, query)
}

func (r *ClientRepository) ListByUser(ctx context.Context, userID int64) ([]ports.ClientJoined, error) {
	query := `SELECT` + clientColumns + clientFrom + `
		WHERE c.user_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at DESC`
	return r.queryClients(ctx, query, userID)
}

func (r *ClientRepository) ListByCompanyName(ctx context.Context, nameFragment string) ([]ports.ClientJoined, error) {
	query := `SELECT` + clientColumns + clientFrom + `
		WHERE co.name ILIKE '%' || $1 || '%' AND c.deleted_at IS NULL
		ORDER BY c.created_at DESC`
	return r.queryClients(ctx, query, nameFragment)
}

func (r *ClientRepository) ActiveClientForCompany(ctx context.Context, companyID, excludeID int64) (int64, error) {
	const query = `
		SELECT id FROM clients
		WHERE company_id = $1 AND id <> $2 AND deleted_at IS NULL`
	var id int64
	err := r.pool.QueryRow(ctx, query, companyID, excludeID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrClientNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("active client for company: %w", err)
	}
	return id, nil
}

// Update applies the planner's assignments in order. Column names come from
// the service layer's fixed set, never from caller input; values are bound.
func (r *ClientRepository) Update(ctx context.Context, id int64, assignments []ports.Assignment) error {
	query, args := buildUpdate("clients", id, assignments)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "clients_company_active_idx") {
			return domain.ErrCompanyAssigned
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) queryClients(ctx context.Context, query string, args ...any) ([]ports.ClientJoined, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []ports.ClientJoined
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*ports.ClientJoined, error) {
	var c ports.ClientJoined
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.UserID, &c.CompanyID,
		&c.CreatedAt, &c.UpdatedAt,
		&c.Username, &c.CompanyName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &c, nil
}

// buildUpdate assembles a parameterized UPDATE from ordered assignments.
// The statement shape depends only on the column list, never on values.
func buildUpdate(table string, id int64, assignments []ports.Assignment) (string, []any) {
	set := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for i, a := range assignments {
		set = append(set, fmt.Sprintf("%s = $%d", a.Column, i+1))
		args = append(args, a.Value)
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND deleted_at IS NULL",
		table, strings.Join(set, ", "), len(args),
	)
	return query, args
}

// isUniqueViolation reports whether err is a unique-constraint violation
// (SQLSTATE 23505) on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
