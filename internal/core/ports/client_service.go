package ports

import "context"

// CreateClientInput carries all data needed to create a client. All fields are
// required; IdempotencyKey is optional and enables replay-safe retries.
type CreateClientInput struct {
	Name           string
	Email          string
	Phone          string
	UserID         int64
	CompanyID      int64
	IdempotencyKey string
}

// UpdateClientInput is a sparse set of proposed changes. Nil means the field
// was omitted; a non-nil pointer means the field was provided with that value.
type UpdateClientInput struct {
	Name      *string
	Email     *string
	Phone     *string
	UserID    *int64
	CompanyID *int64
}

// CreateClientResult wraps the created projection with a replay marker.
type CreateClientResult struct {
	Client *ClientJoined
	// Replayed is true when the idempotency key matched a previous creation
	// and no new row was written.
	Replayed bool
}

// ClientService defines the mutation and query operations for clients.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*CreateClientResult, error)
	UpdateClient(ctx context.Context, id int64, input UpdateClientInput) (*ClientJoined, error)
	GetClient(ctx context.Context, id int64) (*ClientJoined, error)
	ListClients(ctx context.Context) ([]ClientJoined, error)
	ListClientsByUser(ctx context.Context, userID int64) ([]ClientJoined, error)
	ListClientsByCompanyName(ctx context.Context, nameFragment string) ([]ClientJoined, error)
}

// IdempotencyGuard records createClient outcomes under a caller-supplied key
// so that retried requests replay the original result instead of writing twice.
type IdempotencyGuard interface {
	// Lookup returns the client id previously stored under key, or (0, nil)
	// when the key is unseen.
	Lookup(ctx context.Context, key string) (int64, error)
	// Remember stores clientID under key.
	Remember(ctx context.Context, key string, clientID int64) error
}
