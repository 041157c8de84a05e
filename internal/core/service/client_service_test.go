package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

type clientFixture struct {
	svc       *ClientService
	users     *stubUserRepo
	companies *stubCompanyRepo
	clients   *stubClientRepo
	idem      *stubIdemGuard
}

func newClientFixture() *clientFixture {
	users := newStubUserRepo()
	companies := newStubCompanyRepo()
	clients := newStubClientRepo(users, companies)
	idem := newStubIdemGuard()
	return &clientFixture{
		svc:       NewClientService(clients, users, companies, idem, zerolog.Nop()),
		users:     users,
		companies: companies,
		clients:   clients,
		idem:      idem,
	}
}

func (f *clientFixture) seedUser(username string) *domain.User {
	return f.users.add(domain.User{Username: username, Email: username + "@example.com", Role: domain.RoleUser})
}

func (f *clientFixture) seedCompany(name string) *domain.Company {
	return f.companies.add(domain.Company{Name: name, Industry: "Tech", Employees: 10, Revenue: 1000})
}

func validCreateInput(userID, companyID int64) ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:      "Acme Contact",
		Email:     "contact@acme.com",
		Phone:     "5551234",
		UserID:    userID,
		CompanyID: companyID,
	}
}

func TestClientService_Create_Success(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")

	res, err := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID))
	if err != nil {
		t.Fatalf("CreateClient returned error: %v", err)
	}
	if res.Replayed {
		t.Fatalf("fresh create marked as replayed")
	}
	if res.Client.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if res.Client.Username != "alice" || res.Client.CompanyName != "Acme" {
		t.Fatalf("unexpected joined fields: %q %q", res.Client.Username, res.Client.CompanyName)
	}
	if res.Client.CreatedAt.IsZero() || res.Client.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

// Several defects at once: the missing field must win over the malformed email
// and the dangling user reference.
func TestClientService_Create_CheckOrdering(t *testing.T) {
	f := newClientFixture()

	input := ports.CreateClientInput{
		Email:     "not-an-email",
		Phone:     "555x",
		UserID:    999,
		CompanyID: 999,
	}
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	// With all fields present the email shape is checked before references.
	input.Name = "Acme Contact"
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	input.Email = "a@b.c"
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}

	input.Phone = "555"
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	user := f.seedUser("alice")
	input.UserID = user.ID
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestClientService_Create_CompanyAlreadyAssigned(t *testing.T) {
	f := newClientFixture()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")
	company := f.seedCompany("Acme")

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(alice.ID, company.ID)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input := validCreateInput(bob.ID, company.ID)
	input.Email = "bob@acme.com"
	if _, err := f.svc.CreateClient(context.Background(), input); !errors.Is(err, domain.ErrCompanyAssigned) {
		t.Fatalf("expected ErrCompanyAssigned, got %v", err)
	}
}

// Moving the occupant to another company frees the slot for a new client.
func TestClientService_Create_SlotFreedByUpdate(t *testing.T) {
	f := newClientFixture()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")
	c1 := f.seedCompany("Acme")
	c2 := f.seedCompany("Globex")

	first, err := f.svc.CreateClient(context.Background(), validCreateInput(alice.ID, c1.ID))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	blocked := validCreateInput(bob.ID, c1.ID)
	blocked.Email = "bob@acme.com"
	if _, err := f.svc.CreateClient(context.Background(), blocked); !errors.Is(err, domain.ErrCompanyAssigned) {
		t.Fatalf("expected ErrCompanyAssigned, got %v", err)
	}

	if _, err := f.svc.UpdateClient(context.Background(), first.Client.ID, ports.UpdateClientInput{CompanyID: &c2.ID}); err != nil {
		t.Fatalf("move to second company failed: %v", err)
	}

	if _, err := f.svc.CreateClient(context.Background(), blocked); err != nil {
		t.Fatalf("create after slot freed failed: %v", err)
	}
}

func TestClientService_Create_SoftDeletedReferences(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")

	deleted := time.Now().UTC()
	f.users.users[user.ID].DeletedAt = &deleted

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for soft-deleted user, got %v", err)
	}

	f.users.users[user.ID].DeletedAt = nil
	f.companies.companies[company.ID].DeletedAt = &deleted

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID)); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound for soft-deleted company, got %v", err)
	}
}

func TestClientService_Create_IdempotentReplay(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")

	input := validCreateInput(user.ID, company.ID)
	input.IdempotencyKey = "req-42"

	first, err := f.svc.CreateClient(context.Background(), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.Replayed {
		t.Fatalf("first create marked as replayed")
	}

	second, err := f.svc.CreateClient(context.Background(), input)
	if err != nil {
		t.Fatalf("retried create failed: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("retry with same key not replayed")
	}
	if second.Client.ID != first.Client.ID {
		t.Fatalf("replay returned different client: %d vs %d", second.Client.ID, first.Client.ID)
	}
	if len(f.clients.clients) != 1 {
		t.Fatalf("expected a single stored client, got %d", len(f.clients.clients))
	}
}

// A broken guard must not block the write.
func TestClientService_Create_IdempotencyLookupFailure(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")
	f.idem.lookupErr = errors.New("connection refused")

	input := validCreateInput(user.ID, company.ID)
	input.IdempotencyKey = "req-42"

	res, err := f.svc.CreateClient(context.Background(), input)
	if err != nil {
		t.Fatalf("create with failing guard returned error: %v", err)
	}
	if res.Replayed {
		t.Fatalf("create with failing guard marked as replayed")
	}
}

func TestClientService_Update_NoFields(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")
	created, err := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	before := created.Client.UpdatedAt

	if _, err := f.svc.UpdateClient(context.Background(), created.Client.ID, ports.UpdateClientInput{}); !errors.Is(err, domain.ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}

	after, err := f.svc.GetClient(context.Background(), created.Client.ID)
	if err != nil {
		t.Fatalf("get after rejected update failed: %v", err)
	}
	if !after.UpdatedAt.Equal(before) {
		t.Fatalf("rejected update touched updated_at")
	}
}

func TestClientService_Update_NotFound(t *testing.T) {
	f := newClientFixture()
	name := "New Name"
	if _, err := f.svc.UpdateClient(context.Background(), 99, ports.UpdateClientInput{Name: &name}); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_Update_InvalidEmail(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")
	created, _ := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID))

	bad := "nope"
	if _, err := f.svc.UpdateClient(context.Background(), created.Client.ID, ports.UpdateClientInput{Email: &bad}); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

// Keeping the current company is not a conflict with the row's own assignment.
func TestClientService_Update_SameCompanyNotConflict(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	company := f.seedCompany("Acme")
	created, _ := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, company.ID))

	updated, err := f.svc.UpdateClient(context.Background(), created.Client.ID, ports.UpdateClientInput{CompanyID: &company.ID})
	if err != nil {
		t.Fatalf("re-assigning own company failed: %v", err)
	}
	if updated.CompanyID != company.ID {
		t.Fatalf("unexpected company id: %d", updated.CompanyID)
	}
}

func TestClientService_Update_CompanyTaken(t *testing.T) {
	f := newClientFixture()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")
	c1 := f.seedCompany("Acme")
	c2 := f.seedCompany("Globex")

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(alice.ID, c1.ID)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second := validCreateInput(bob.ID, c2.ID)
	second.Email = "bob@globex.com"
	other, err := f.svc.CreateClient(context.Background(), second)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	if _, err := f.svc.UpdateClient(context.Background(), other.Client.ID, ports.UpdateClientInput{CompanyID: &c1.ID}); !errors.Is(err, domain.ErrCompanyAssigned) {
		t.Fatalf("expected ErrCompanyAssigned, got %v", err)
	}
}

// The planner emits assignments in the canonical field order, with the
// updated_at touch always last.
func TestClientService_Update_AssignmentOrder(t *testing.T) {
	f := newClientFixture()
	user := f.seedUser("alice")
	c1 := f.seedCompany("Acme")
	c2 := f.seedCompany("Globex")
	created, _ := f.svc.CreateClient(context.Background(), validCreateInput(user.ID, c1.ID))

	name := "Renamed"
	phone := "777"
	if _, err := f.svc.UpdateClient(context.Background(), created.Client.ID, ports.UpdateClientInput{
		CompanyID: &c2.ID,
		Phone:     &phone,
		Name:      &name,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	want := []string{"name", "phone", "company_id", "updated_at"}
	if len(f.clients.lastUpdate) != len(want) {
		t.Fatalf("expected %d assignments, got %d", len(want), len(f.clients.lastUpdate))
	}
	for i, col := range want {
		if f.clients.lastUpdate[i].Column != col {
			t.Fatalf("assignment %d: got column %q, want %q", i, f.clients.lastUpdate[i].Column, col)
		}
	}
}

func TestClientService_ListByCompanyName(t *testing.T) {
	f := newClientFixture()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")
	acme := f.seedCompany("Acme Corp")
	globex := f.seedCompany("Globex")

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(alice.ID, acme.ID)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second := validCreateInput(bob.ID, globex.ID)
	second.Email = "bob@globex.com"
	if _, err := f.svc.CreateClient(context.Background(), second); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.svc.ListClientsByCompanyName(context.Background(), "acme")
	if err != nil {
		t.Fatalf("list by company name failed: %v", err)
	}
	if len(got) != 1 || got[0].CompanyName != "Acme Corp" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestClientService_ListByUser(t *testing.T) {
	f := newClientFixture()
	alice := f.seedUser("alice")
	bob := f.seedUser("bob")
	acme := f.seedCompany("Acme")
	globex := f.seedCompany("Globex")

	if _, err := f.svc.CreateClient(context.Background(), validCreateInput(alice.ID, acme.ID)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second := validCreateInput(bob.ID, globex.ID)
	second.Email = "bob@globex.com"
	if _, err := f.svc.CreateClient(context.Background(), second); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.svc.ListClientsByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if len(got) != 1 || got[0].UserID != alice.ID {
		t.Fatalf("unexpected result: %+v", got)
	}
}
