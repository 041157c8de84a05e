package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

const companyColumns = `id, name, industry, employees, revenue, related_company_id, created_at, updated_at`

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	const query = `
		INSERT INTO companies (name, industry, employees, revenue, related_company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Industry, c.Employees, c.Revenue, c.RelatedCompanyID, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND deleted_at IS NULL`
	return scanCompany(r.pool.QueryRow(ctx, query, id))
}

func (r *CompanyRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("company exists: %w", err)
	}
	return exists, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, assignments []ports.Assignment) error {
	query, args := buildUpdate("companies", id, assignments)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`
	return r.queryCompanies(ctx, query)
}

func (r *CompanyRepository) ListByEmployeeRange(ctx context.Context, min, max int64) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE employees BETWEEN $1 AND $2 AND deleted_at IS NULL
		ORDER BY employees DESC`
	return r.queryCompanies(ctx, query, min, max)
}

func (r *CompanyRepository) MaxRevenueByIndustry(ctx context.Context) ([]ports.IndustryRevenue, error) {
	const query = `
		SELECT id, name, industry, employees, revenue FROM (
			SELECT DISTINCT ON (industry) id, name, industry, employees, revenue
			FROM companies
			WHERE deleted_at IS NULL
			ORDER BY industry, revenue DESC
		) leaders
		ORDER BY revenue DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("max revenue by industry: %w", err)
	}
	defer rows.Close()

	var out []ports.IndustryRevenue
	for rows.Next() {
		var ir ports.IndustryRevenue
		if err := rows.Scan(&ir.ID, &ir.Name, &ir.Industry, &ir.Employees, &ir.Revenue); err != nil {
			return nil, fmt.Errorf("scan industry revenue: %w", err)
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) CountByMinEmployees(ctx context.Context, min int64) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM companies
		WHERE employees > $1 AND deleted_at IS NULL`
	var count int64
	if err := r.pool.QueryRow(ctx, query, min).Scan(&count); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return count, nil
}

func (r *CompanyRepository) queryCompanies(ctx context.Context, query string, args ...any) ([]domain.Company, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Employees, &c.Revenue,
		&c.RelatedCompanyID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}
