package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVendors, downCreateVendors)
}

func upCreateVendors(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE vendors (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  name VARCHAR(255) NOT NULL,
	  contact_person VARCHAR(300) NOT NULL DEFAULT '',
	  address VARCHAR(255) NOT NULL DEFAULT '',
	  email VARCHAR(50) NOT NULL UNIQUE,
	  status VARCHAR(20) NOT NULL DEFAULT 'pending'
	    CHECK (status IN ('active', 'inactive', 'pending', 'review', 'on-hold', 'suspend')),
	  category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
	  subcategory_id UUID REFERENCES subcategories(id) ON DELETE SET NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX vendors_status_idx ON vendors (status);
	CREATE INDEX vendors_category_id_idx ON vendors (category_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateVendors(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS vendors;`)
	return err
}
