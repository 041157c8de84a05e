package domain

import "time"

// Client is the core relationship entity: it references exactly one user and
// exactly one company, both of which must be active rows at write time.
type Client struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	UserID    int64      `json:"user_id"`
	CompanyID int64      `json:"company_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
