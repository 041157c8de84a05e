package handler

import (
	"time"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

type createCompanyRequest struct {
	Name             string `json:"name"`
	Industry         string `json:"industry"`
	Employees        int64  `json:"employees"`
	Revenue          int64  `json:"revenue"`
	RelatedCompanyID *int64 `json:"related_company_id"`
}

type updateCompanyRequest struct {
	Name             *string `json:"name"`
	Industry         *string `json:"industry"`
	Employees        *int64  `json:"employees"`
	Revenue          *int64  `json:"revenue"`
	RelatedCompanyID *int64  `json:"related_company_id"`
}

type companyResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Industry         string    `json:"industry,omitempty"`
	Employees        int64     `json:"employees"`
	Revenue          int64     `json:"revenue"`
	RelatedCompanyID *int64    `json:"related_company_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type companyEnvelope struct {
	Message string          `json:"message"`
	Company companyResponse `json:"company"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func toCompanyResponse(c *domain.Company) companyResponse {
	return companyResponse{
		ID:               c.ID,
		Name:             c.Name,
		Industry:         c.Industry,
		Employees:        c.Employees,
		Revenue:          c.Revenue,
		RelatedCompanyID: c.RelatedCompanyID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toCompanyResponses(companies []domain.Company) []companyResponse {
	out := make([]companyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, toCompanyResponse(&companies[i]))
	}
	return out
}
