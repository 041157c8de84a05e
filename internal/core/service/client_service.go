package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// ClientService orchestrates the guarded mutations for clients: field
// validation, referential integrity against users and companies, and the
// one-active-client-per-company invariant, in that fixed order.
type ClientService struct {
	clients   ports.ClientRepository
	users     ports.UserRepository
	companies ports.CompanyRepository
	idem      ports.IdempotencyGuard
	logger    zerolog.Logger
}

// NewClientService wires the client engine. idem may be nil, in which case
// idempotency keys are ignored.
func NewClientService(clients ports.ClientRepository, users ports.UserRepository, companies ports.CompanyRepository, idem ports.IdempotencyGuard, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, users: users, companies: companies, idem: idem, logger: logger}
}

// CreateClient validates and inserts a new client.
//
// Check ordering is significant and fixed: missing fields → email/phone shape
// → user exists → company exists → company available. The most fundamental
// problem is always the one reported.
func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*ports.CreateClientResult, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.UserID == 0 || input.CompanyID == 0 {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidEmail(input.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if !domain.ValidPhone(input.Phone) {
		return nil, domain.ErrInvalidPhone
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if id, err := s.idem.Lookup(ctx, input.IdempotencyKey); err != nil {
			// The guard is advisory: a failed lookup must not block the write.
			s.logger.Warn().Err(err).Msg("idempotency lookup failed")
		} else if id != 0 {
			if existing, err := s.clients.FindByID(ctx, id); err == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("client_id", id).Msg("idempotent replay")
				return &ports.CreateClientResult{Client: existing, Replayed: true}, nil
			}
		}
	}

	ok, err := s.users.ExistsActive(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ok, err = s.companies.ExistsActive(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("resolve company: %w", err)
	}
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}

	if err := s.companyAvailable(ctx, input.CompanyID, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.clients.Create(ctx, &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		UserID:    input.UserID,
		CompanyID: input.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCompanyAssigned) {
			// The partial unique index caught a concurrent writer; surface it
			// as the same conflict the pre-check would have produced.
			return nil, err
		}
		s.logger.Error().Err(err).Int64("company_id", input.CompanyID).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Msg("idempotency remember failed")
		}
	}

	s.logger.Info().Int64("client_id", created.ID).Int64("user_id", input.UserID).Int64("company_id", input.CompanyID).Msg("client created")
	return &ports.CreateClientResult{Client: created}, nil
}

// UpdateClient applies a sparse set of proposed changes to one active client.
// Only fields provided with a value participate; each is validated in the
// canonical order (name, email, phone, user, company) before being planned.
func (s *ClientService) UpdateClient(ctx context.Context, id int64, input ports.UpdateClientInput) (*ports.ClientJoined, error) {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var plan updatePlan

	if input.Name != nil {
		plan.set("name", *input.Name)
	}
	if input.Email != nil {
		if !domain.ValidEmail(*input.Email) {
			return nil, domain.ErrInvalidEmail
		}
		plan.set("email", *input.Email)
	}
	if input.Phone != nil {
		if !domain.ValidPhone(*input.Phone) {
			return nil, domain.ErrInvalidPhone
		}
		plan.set("phone", *input.Phone)
	}
	if input.UserID != nil {
		ok, err := s.users.ExistsActive(ctx, *input.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		plan.set("user_id", *input.UserID)
	}
	if input.CompanyID != nil {
		ok, err := s.companies.ExistsActive(ctx, *input.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("resolve company: %w", err)
		}
		if !ok {
			return nil, domain.ErrCompanyNotFound
		}
		// Exclude the row being updated: keeping the same company is not a
		// conflict with itself.
		if err := s.companyAvailable(ctx, *input.CompanyID, id); err != nil {
			return nil, err
		}
		plan.set("company_id", *input.CompanyID)
	}

	if plan.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	if err := s.clients.Update(ctx, id, plan.finish(time.Now().UTC())); err != nil {
		s.logger.Error().Err(err).Int64("client_id", id).Msg("failed to update client")
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.logger.Info().Int64("client_id", id).Msg("client updated")
	return s.clients.FindByID(ctx, id)
}

// GetClient returns one active client joined with its display fields.
func (s *ClientService) GetClient(ctx context.Context, id int64) (*ports.ClientJoined, error) {
	return s.clients.FindByID(ctx, id)
}

// ListClients returns all active clients, newest first.
func (s *ClientService) ListClients(ctx context.Context) ([]ports.ClientJoined, error) {
	return s.clients.List(ctx)
}

// ListClientsByUser returns the active clients owned by one user.
func (s *ClientService) ListClientsByUser(ctx context.Context, userID int64) ([]ports.ClientJoined, error) {
	return s.clients.ListByUser(ctx, userID)
}

// ListClientsByCompanyName returns active clients whose company name contains
// the given fragment.
func (s *ClientService) ListClientsByCompanyName(ctx context.Context, nameFragment string) ([]ports.ClientJoined, error) {
	return s.clients.ListByCompanyName(ctx, nameFragment)
}

// companyAvailable enforces the one-active-client-per-company invariant.
// Evaluated strictly after existence checks and strictly before the write;
// the store-level partial unique index backstops the remaining race window.
func (s *ClientService) companyAvailable(ctx context.Context, companyID, excludeClientID int64) error {
	_, err := s.clients.ActiveClientForCompany(ctx, companyID, excludeClientID)
	switch {
	case err == nil:
		return domain.ErrCompanyAssigned
	case errors.Is(err, domain.ErrClientNotFound):
		return nil
	default:
		return fmt.Errorf("company availability: %w", err)
	}
}
