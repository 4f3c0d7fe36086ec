package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUserProfiles, downCreateUserProfiles)
}

func upCreateUserProfiles(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE user_profiles (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	  profile_pic TEXT,
	  address VARCHAR(200),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateUserProfiles(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS user_profiles;`)
	return err
}
