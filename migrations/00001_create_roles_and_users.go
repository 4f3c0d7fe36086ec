package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRolesAndUsers, downCreateRolesAndUsers)
}

func upCreateRolesAndUsers(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE roles (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  name VARCHAR(255) NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE TABLE users (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  email VARCHAR(255) NOT NULL,
	  first_name VARCHAR(255) NOT NULL DEFAULT '',
	  last_name VARCHAR(255) NOT NULL DEFAULT '',
	  password TEXT NOT NULL,
	  role_id UUID REFERENCES roles(id) ON DELETE SET NULL,
	  phone_number VARCHAR(13),
	  is_free BOOLEAN NOT NULL DEFAULT false,
	  otp VARCHAR(8),
	  otp_expires_at TIMESTAMP WITH TIME ZONE,
	  refresh_token TEXT,
	  is_admin BOOLEAN NOT NULL DEFAULT false,
	  is_staff BOOLEAN NOT NULL DEFAULT false,
	  is_active BOOLEAN NOT NULL DEFAULT false,
	  is_superadmin BOOLEAN NOT NULL DEFAULT false,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  deleted_at TIMESTAMP WITH TIME ZONE
	);

	CREATE UNIQUE INDEX users_email_key ON users (email) WHERE deleted_at IS NULL;
	CREATE INDEX users_role_id_idx ON users (role_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateRolesAndUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users; DROP TABLE IF EXISTS roles;`)
	return err
}
