package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// CompanyService orchestrates company mutations and the report queries.
type CompanyService struct {
	companies ports.CompanyRepository
	logger    zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, logger: logger}
}

// CreateCompany inserts a new company. A related company reference, when
// given, must resolve to an active row.
func (s *CompanyService) CreateCompany(ctx context.Context, input ports.CreateCompanyInput) (*domain.Company, error) {
	if input.Name == "" {
		return nil, domain.ErrMissingFields
	}
	if input.RelatedCompanyID != nil {
		if err := s.resolveRelated(ctx, *input.RelatedCompanyID, 0); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created, err := s.companies.Create(ctx, &domain.Company{
		Name:             input.Name,
		Industry:         input.Industry,
		Employees:        input.Employees,
		Revenue:          input.Revenue,
		RelatedCompanyID: input.RelatedCompanyID,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create company")
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.logger.Info().Int64("company_id", created.ID).Msg("company created")
	return created, nil
}

// UpdateCompany applies a sparse set of proposed changes to one active company.
func (s *CompanyService) UpdateCompany(ctx context.Context, id int64, input ports.UpdateCompanyInput) (*domain.Company, error) {
	if _, err := s.companies.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var plan updatePlan

	if input.Name != nil {
		plan.set("name", *input.Name)
	}
	if input.Industry != nil {
		plan.set("industry", *input.Industry)
	}
	if input.Employees != nil {
		plan.set("employees", *input.Employees)
	}
	if input.Revenue != nil {
		plan.set("revenue", *input.Revenue)
	}
	if input.RelatedCompanyID != nil {
		if err := s.resolveRelated(ctx, *input.RelatedCompanyID, id); err != nil {
			return nil, err
		}
		plan.set("related_company_id", *input.RelatedCompanyID)
	}

	if plan.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	if err := s.companies.Update(ctx, id, plan.finish(time.Now().UTC())); err != nil {
		s.logger.Error().Err(err).Int64("company_id", id).Msg("failed to update company")
		return nil, fmt.Errorf("update company: %w", err)
	}

	s.logger.Info().Int64("company_id", id).Msg("company updated")
	return s.companies.FindByID(ctx, id)
}

// ListCompanies returns active companies, newest first.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

// CompaniesByEmployeeRange returns active companies with a headcount in
// [min, max], largest first.
func (s *CompanyService) CompaniesByEmployeeRange(ctx context.Context, min, max int64) ([]domain.Company, error) {
	return s.companies.ListByEmployeeRange(ctx, min, max)
}

// MaxRevenueByIndustry returns the highest-revenue active company per industry.
func (s *CompanyService) MaxRevenueByIndustry(ctx context.Context) ([]ports.IndustryRevenue, error) {
	return s.companies.MaxRevenueByIndustry(ctx)
}

// CountCompaniesByMinEmployees counts active companies with more than min employees.
func (s *CompanyService) CountCompaniesByMinEmployees(ctx context.Context, min int64) (int64, error) {
	return s.companies.CountByMinEmployees(ctx, min)
}

// resolveRelated checks a company self-reference: the target must be an
// active row, and a company may not reference itself.
func (s *CompanyService) resolveRelated(ctx context.Context, relatedID, selfID int64) error {
	if selfID != 0 && relatedID == selfID {
		return domain.ErrCompanyNotFound
	}
	ok, err := s.companies.ExistsActive(ctx, relatedID)
	if err != nil {
		return fmt.Errorf("resolve related company: %w", err)
	}
	if !ok {
		return domain.ErrCompanyNotFound
	}
	return nil
}
