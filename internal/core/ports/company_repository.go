package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// IndustryRevenue pairs an industry with its highest-revenue active company.
type IndustryRevenue struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Employees int64  `json:"employees"`
	Revenue   int64  `json:"revenue"`
}

// CompanyRepository defines persistence operations for companies. All reads
// exclude soft-deleted rows.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	// FindByID returns the active company with the given id or domain.ErrCompanyNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	// ExistsActive reports whether an active company with the given id exists.
	ExistsActive(ctx context.Context, id int64) (bool, error)
	// Update applies the planner's ordered assignments to one active row.
	Update(ctx context.Context, id int64, assignments []Assignment) error
	// List returns active companies, newest first.
	List(ctx context.Context) ([]domain.Company, error)
	// ListByEmployeeRange returns active companies with employees between min
	// and max inclusive, ordered by employees descending.
	ListByEmployeeRange(ctx context.Context, min, max int64) ([]domain.Company, error)
	// MaxRevenueByIndustry returns the highest-revenue active company per
	// industry, ordered by revenue descending.
	MaxRevenueByIndustry(ctx context.Context) ([]IndustryRevenue, error)
	// CountByMinEmployees counts active companies with more than min employees.
	CountByMinEmployees(ctx context.Context, min int64) (int64, error)
}
