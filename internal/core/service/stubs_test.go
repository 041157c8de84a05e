package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/ports"
)

// In-memory repositories backing the service tests. Reads hand out clones so
// a test can never mutate stored state through a returned pointer.

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func cloneCompany(c *domain.Company) *domain.Company {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = cloneUser(&u)
	return cloneUser(&u)
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.DeletedAt != nil {
			continue
		}
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	return r.add(*u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsActive(_ context.Context, id int64) (bool, error) {
	u, ok := r.users[id]
	return ok && u.DeletedAt == nil, nil
}

func (r *stubUserRepo) UsernameClaimed(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.ID != excludeID && u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) EmailClaimed(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Replace(_ context.Context, id int64, username, email, password, role string) error {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	u.Username = username
	u.Email = email
	u.Password = password
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) List(_ context.Context, usernameFilter string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.DeletedAt != nil {
			continue
		}
		if usernameFilter != "" && !strings.Contains(u.Username, usernameFilter) {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type stubCompanyRepo struct {
	companies  map[int64]*domain.Company
	nextID     int64
	lastUpdate []ports.Assignment
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[int64]*domain.Company)}
}

func (r *stubCompanyRepo) add(c domain.Company) *domain.Company {
	r.nextID++
	c.ID = r.nextID
	r.companies[c.ID] = cloneCompany(&c)
	return cloneCompany(&c)
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	return r.add(*c), nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCompanyNotFound
	}
	return cloneCompany(c), nil
}

func (r *stubCompanyRepo) ExistsActive(_ context.Context, id int64) (bool, error) {
	c, ok := r.companies[id]
	return ok && c.DeletedAt == nil, nil
}

func (r *stubCompanyRepo) Update(_ context.Context, id int64, assignments []ports.Assignment) error {
	c, ok := r.companies[id]
	if !ok || c.DeletedAt != nil {
		return domain.ErrCompanyNotFound
	}
	r.lastUpdate = assignments
	for _, a := range assignments {
		switch a.Column {
		case "name":
			c.Name = a.Value.(string)
		case "industry":
			c.Industry = a.Value.(string)
		case "employees":
			c.Employees = a.Value.(int64)
		case "revenue":
			c.Revenue = a.Value.(int64)
		case "related_company_id":
			v := a.Value.(int64)
			c.RelatedCompanyID = &v
		case "updated_at":
			c.UpdatedAt = a.Value.(time.Time)
		}
	}
	return nil
}

func (r *stubCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	var out []domain.Company
	for _, c := range r.companies {
		if c.DeletedAt == nil {
			out = append(out, *cloneCompany(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCompanyRepo) ListByEmployeeRange(_ context.Context, min, max int64) ([]domain.Company, error) {
	var out []domain.Company
	for _, c := range r.companies {
		if c.DeletedAt == nil && c.Employees >= min && c.Employees <= max {
			out = append(out, *cloneCompany(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Employees > out[j].Employees })
	return out, nil
}

func (r *stubCompanyRepo) MaxRevenueByIndustry(_ context.Context) ([]ports.IndustryRevenue, error) {
	leaders := make(map[string]*domain.Company)
	for _, c := range r.companies {
		if c.DeletedAt != nil {
			continue
		}
		if best, ok := leaders[c.Industry]; !ok || c.Revenue > best.Revenue {
			leaders[c.Industry] = c
		}
	}
	var out []ports.IndustryRevenue
	for _, c := range leaders {
		out = append(out, ports.IndustryRevenue{
			ID: c.ID, Name: c.Name, Industry: c.Industry,
			Employees: c.Employees, Revenue: c.Revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out, nil
}

func (r *stubCompanyRepo) CountByMinEmployees(_ context.Context, min int64) (int64, error) {
	var n int64
	for _, c := range r.companies {
		if c.DeletedAt == nil && c.Employees > min {
			n++
		}
	}
	return n, nil
}

type stubClientRepo struct {
	clients    map[int64]*domain.Client
	users      *stubUserRepo
	companies  *stubCompanyRepo
	nextID     int64
	lastUpdate []ports.Assignment
}

func newStubClientRepo(users *stubUserRepo, companies *stubCompanyRepo) *stubClientRepo {
	return &stubClientRepo{clients: make(map[int64]*domain.Client), users: users, companies: companies}
}

func (r *stubClientRepo) joined(c *domain.Client) *ports.ClientJoined {
	j := &ports.ClientJoined{Client: *c}
	if u, ok := r.users.users[c.UserID]; ok {
		j.Username = u.Username
	}
	if co, ok := r.companies.companies[c.CompanyID]; ok {
		j.CompanyName = co.Name
	}
	return j
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*ports.ClientJoined, error) {
	for _, existing := range r.clients {
		if existing.DeletedAt == nil && existing.CompanyID == c.CompanyID {
			return nil, domain.ErrCompanyAssigned
		}
	}
	clone := *c
	r.nextID++
	clone.ID = r.nextID
	r.clients[clone.ID] = &clone
	return r.joined(&clone), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id int64) (*ports.ClientJoined, error) {
	c, ok := r.clients[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrClientNotFound
	}
	return r.joined(c), nil
}

func (r *stubClientRepo) List(_ context.Context) ([]ports.ClientJoined, error) {
	var out []ports.ClientJoined
	for _, c := range r.clients {
		if c.DeletedAt == nil {
			out = append(out, *r.joined(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubClientRepo) ActiveClientForCompany(_ context.Context, companyID, excludeID int64) (int64, error) {
	for _, c := range r.clients {
		if c.DeletedAt == nil && c.CompanyID == companyID && c.ID != excludeID {
			return c.ID, nil
		}
	}
	return 0, domain.ErrClientNotFound
}

func (r *stubClientRepo) Update(_ context.Context, id int64, assignments []ports.Assignment) error {
	c, ok := r.clients[id]
	if !ok || c.DeletedAt != nil {
		return domain.ErrClientNotFound
	}
	r.lastUpdate = assignments
	for _, a := range assignments {
		switch a.Column {
		case "name":
			c.Name = a.Value.(string)
		case "email":
			c.Email = a.Value.(string)
		case "phone":
			c.Phone = a.Value.(string)
		case "user_id":
			c.UserID = a.Value.(int64)
		case "company_id":
			c.CompanyID = a.Value.(int64)
		case "updated_at":
			c.UpdatedAt = a.Value.(time.Time)
		}
	}
	return nil
}

func (r *stubClientRepo) ListByUser(_ context.Context, userID int64) ([]ports.ClientJoined, error) {
	var out []ports.ClientJoined
	for _, c := range r.clients {
		if c.DeletedAt == nil && c.UserID == userID {
			out = append(out, *r.joined(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubClientRepo) ListByCompanyName(_ context.Context, nameFragment string) ([]ports.ClientJoined, error) {
	var out []ports.ClientJoined
	fragment := strings.ToLower(nameFragment)
	for _, c := range r.clients {
		if c.DeletedAt != nil {
			continue
		}
		co, ok := r.companies.companies[c.CompanyID]
		if ok && strings.Contains(strings.ToLower(co.Name), fragment) {
			out = append(out, *r.joined(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type stubIdemGuard struct {
	seen      map[string]int64
	lookupErr error
}

func newStubIdemGuard() *stubIdemGuard {
	return &stubIdemGuard{seen: make(map[string]int64)}
}

func (g *stubIdemGuard) Lookup(_ context.Context, key string) (int64, error) {
	if g.lookupErr != nil {
		return 0, g.lookupErr
	}
	return g.seen[key], nil
}

func (g *stubIdemGuard) Remember(_ context.Context, key string, clientID int64) error {
	g.seen[key] = clientID
	return nil
}
