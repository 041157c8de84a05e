package handler

import (
	"time"

	"github.com/entitydesk/entity-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createClientRequest intentionally carries no required tags: the service
// enforces required-field presence first so error ordering stays deterministic.
type createClientRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
}

// updateClientRequest distinguishes omitted fields (nil) from provided ones.
type updateClientRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	UserID    *int64  `json:"user_id"`
	CompanyID *int64  `json:"company_id"`
}

// clientResponse is the joined projection: the client row plus human-readable
// display fields of its references.
type clientResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	CompanyID   int64     `json:"company_id"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type clientEnvelope struct {
	Message string         `json:"message"`
	Client  clientResponse `json:"client"`
}

func toClientResponse(c *ports.ClientJoined) clientResponse {
	return clientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		UserID:      c.UserID,
		Username:    c.Username,
		CompanyID:   c.CompanyID,
		CompanyName: c.CompanyName,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toClientResponses(clients []ports.ClientJoined) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	return out
}
