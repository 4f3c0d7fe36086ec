package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateReferenceData, downCreateReferenceData)
}

func upCreateReferenceData(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE core_categories (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  name VARCHAR(255) NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE TABLE categories (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  name VARCHAR(100) NOT NULL UNIQUE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE TABLE subcategories (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	  name VARCHAR(100) NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX subcategories_category_id_idx ON subcategories (category_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateReferenceData(ctx context.Context, tx *sql.Tx) error {
	query := `
	DROP TABLE IF EXISTS subcategories;
	DROP TABLE IF EXISTS categories;
	DROP TABLE IF EXISTS core_categories;
	`
	_, err := tx.ExecContext(ctx, query)
	return err
}
