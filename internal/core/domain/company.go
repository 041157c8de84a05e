package domain

import "time"

// Company is a business entity that at most one active client may reference.
// RelatedCompanyID is an optional self-reference; when set it must point at an
// existing, non-deleted company.
type Company struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Industry         string     `json:"industry,omitempty"`
	Employees        int64      `json:"employees"`
	Revenue          int64      `json:"revenue"`
	RelatedCompanyID *int64     `json:"related_company_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"-"`
}
