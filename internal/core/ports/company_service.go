package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// CreateCompanyInput carries the data for a new company. RelatedCompanyID is
// optional; when set it must reference an existing, non-deleted company.
type CreateCompanyInput struct {
	Name             string
	Industry         string
	Employees        int64
	Revenue          int64
	RelatedCompanyID *int64
}

// UpdateCompanyInput is a sparse set of proposed changes, pointer-per-field
// like UpdateClientInput.
type UpdateCompanyInput struct {
	Name             *string
	Industry         *string
	Employees        *int64
	Revenue          *int64
	RelatedCompanyID *int64
}

// CompanyService defines the mutation, query and report operations for companies.
type CompanyService interface {
	CreateCompany(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	UpdateCompany(ctx context.Context, id int64, input UpdateCompanyInput) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	CompaniesByEmployeeRange(ctx context.Context, min, max int64) ([]domain.Company, error)
	MaxRevenueByIndustry(ctx context.Context) ([]IndustryRevenue, error)
	CountCompaniesByMinEmployees(ctx context.Context, min int64) (int64, error)
}
