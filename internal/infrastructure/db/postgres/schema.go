package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full DDL for the service. The partial unique indexes are the
// store-level backstop for the business-layer uniqueness checks: at most one
// active client per company, and unique username/email among active users.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	username   TEXT NOT NULL,
	email      TEXT NOT NULL,
	password   TEXT NOT NULL,
	role       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_active_idx
	ON users (username) WHERE deleted_at IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS users_email_active_idx
	ON users (email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS companies (
	id                 BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name               TEXT NOT NULL,
	industry           TEXT NOT NULL DEFAULT '',
	employees          BIGINT NOT NULL DEFAULT 0,
	revenue            BIGINT NOT NULL DEFAULT 0,
	related_company_id BIGINT REFERENCES companies(id),
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at         TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS clients (
	id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	company_id BIGINT NOT NULL REFERENCES companies(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS clients_company_active_idx
	ON clients (company_id) WHERE deleted_at IS NULL;
`

// EnsureSchema applies the embedded DDL. All statements are idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
