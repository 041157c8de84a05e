package ports

import (
	"context"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// Assignment is one (column, value) pair produced by the partial-update
// planner. Column is always drawn from a fixed enumerated set owned by the
// service layer; values are bound as query parameters, never interpolated.
type Assignment struct {
	Column string
	Value  any
}

// ClientJoined is a client row joined with the display fields of its
// references: the owning user's username and the owning company's name.
type ClientJoined struct {
	domain.Client
	Username    string `json:"username"`
	CompanyName string `json:"company_name"`
}

// ClientRepository defines persistence operations for clients.
// Every read filters soft-deleted rows (deleted_at IS NULL); any new query
// added here must do the same.
type ClientRepository interface {
	// Create inserts a client and returns its joined projection.
	// Returns domain.ErrCompanyAssigned when the store-level uniqueness
	// constraint on the company rejects the write.
	Create(ctx context.Context, c *domain.Client) (*ClientJoined, error)
	// FindByID returns the active client with the given id, joined, or
	// domain.ErrClientNotFound.
	FindByID(ctx context.Context, id int64) (*ClientJoined, error)
	// List returns all active clients joined, most recently created first.
	List(ctx context.Context) ([]ClientJoined, error)
	// ActiveClientForCompany returns the id of the active client referencing
	// companyID, excluding excludeID (0 = exclude nothing). Returns
	// domain.ErrClientNotFound when the company slot is free.
	ActiveClientForCompany(ctx context.Context, companyID, excludeID int64) (int64, error)
	// Update applies the planner's ordered assignments to one active row.
	Update(ctx context.Context, id int64, assignments []Assignment) error
	// ListByUser returns active clients owned by userID, joined, newest first.
	ListByUser(ctx context.Context, userID int64) ([]ClientJoined, error)
	// ListByCompanyName returns active clients whose company name contains the
	// given fragment, joined, newest first.
	ListByCompanyName(ctx context.Context, nameFragment string) ([]ClientJoined, error)
}
