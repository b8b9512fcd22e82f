package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates the schema when it does not exist yet. Statement order
// matters: companies before users (FK), roles and permissions before the
// join tables.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id            BIGSERIAL PRIMARY KEY,
			doc_type      VARCHAR(10)  NOT NULL,
			doc_number    VARCHAR(20)  NOT NULL,
			legal_name    VARCHAR(255) NOT NULL,
			trade_name    VARCHAR(255) NOT NULL DEFAULT '',
			status        VARCHAR(50)  NOT NULL DEFAULT '',
			phone         VARCHAR(30)  NOT NULL DEFAULT '',
			contact_email VARCHAR(254) NOT NULL DEFAULT '',
			blocked       BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
			UNIQUE (doc_type, doc_number)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			name          VARCHAR(100) NOT NULL,
			email         VARCHAR(254) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			active        BOOLEAN      NOT NULL DEFAULT TRUE,
			company_id    BIGINT REFERENCES companies (id),
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id          BIGSERIAL PRIMARY KEY,
			name        VARCHAR(50) NOT NULL UNIQUE,
			description VARCHAR(150) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS permissions (
			id          BIGSERIAL PRIMARY KEY,
			name        VARCHAR(100) NOT NULL UNIQUE,
			description VARCHAR(200) NOT NULL DEFAULT '',
			route       VARCHAR(100) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			role_id BIGINT NOT NULL REFERENCES roles (id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS role_permissions (
			role_id       BIGINT NOT NULL REFERENCES roles (id) ON DELETE CASCADE,
			permission_id BIGINT NOT NULL REFERENCES permissions (id) ON DELETE CASCADE,
			PRIMARY KEY (role_id, permission_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id                   BIGSERIAL PRIMARY KEY,
			company_id           BIGINT NOT NULL REFERENCES companies (id),
			name                 VARCHAR(150) NOT NULL,
			description          TEXT NOT NULL DEFAULT '',
			unit_price_cents     BIGINT NOT NULL DEFAULT 0,
			purchase_price_cents BIGINT,
			consigned            BOOLEAN NOT NULL DEFAULT FALSE,
			stock_qty            INTEGER NOT NULL DEFAULT 0,
			active               BOOLEAN NOT NULL DEFAULT TRUE,
			image_key            VARCHAR(64),
			created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: bootstrap: %w", err)
		}
	}
	return nil
}
