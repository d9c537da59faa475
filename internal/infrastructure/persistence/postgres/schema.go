package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstrap. Statements are idempotent so startup can run them
// unconditionally. Foreign keys enforce the cross-entity references the
// service layer deliberately does not re-check.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		name varchar(300) NOT NULL,
		last_name varchar(300) NOT NULL,
		full_name varchar(300) NOT NULL,
		email varchar(300) NOT NULL,
		password_hash varchar(300) NOT NULL,
		role varchar(300) NOT NULL,
		is_active boolean NOT NULL DEFAULT true,
		created_by varchar(300) NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS projects (
		id uuid PRIMARY KEY,
		name varchar(300) NOT NULL,
		description varchar(300) NOT NULL DEFAULT '',
		start_date timestamptz NOT NULL,
		end_date timestamptz NOT NULL,
		owner_id uuid NOT NULL REFERENCES users (id),
		is_active boolean NOT NULL DEFAULT true,
		created_by varchar(300) NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id uuid PRIMARY KEY,
		title varchar(300) NOT NULL,
		description varchar(300) NOT NULL DEFAULT '',
		status varchar(300) NOT NULL,
		project_id uuid NOT NULL REFERENCES projects (id),
		assignee_id uuid NOT NULL REFERENCES users (id),
		due_date timestamptz NOT NULL,
		start_date timestamptz NOT NULL,
		is_active boolean NOT NULL DEFAULT true,
		created_by varchar(300) NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS project_members (
		project_id uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
		user_id uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, user_id)
	)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
