package domain

import "errors"

// Malformed input, detected before any store access.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidPhone     = errors.New("phone must contain only numbers")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Not found: the referenced row does not exist or is soft-deleted.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrClientNotFound  = errors.New("client not found")
)

// Conflict: a uniqueness invariant would be violated.
var (
	ErrCompanyAssigned = errors.New("company already assigned")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
)

// ErrStoredEmailInvalid signals that a persisted row fails current validation
// rules (data predating those rules). Distinct from not-found on purpose.
var ErrStoredEmailInvalid = errors.New("stored email format invalid")

// ErrInvalidCredentials covers both wrong passwords and malformed login
// requests; login never reveals which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")
