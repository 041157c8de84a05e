package domain

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// ValidRole reports whether role is one of the two defined role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models an account that can own clients and authenticate against the API.
// Password holds the stored (hashed) credential and is never serialized.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
