package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"erp-backend/internal/data/entity"
	"erp-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// VendorFilter narrows vendor listings. Zero values are ignored.
type VendorFilter struct {
	Status     entity.VendorStatus
	CategoryID *uuid.UUID
	Search     string
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
	FindAll(ctx context.Context, limit, offset int, filter VendorFilter) ([]*entity.Vendor, error)
	CountAll(ctx context.Context, filter VendorFilter) (int64, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorRepository(db database.PgxIface, log *zap.Logger) VendorRepository {
	return &vendorRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor")),
	}
}

const vendorColumns = `id, name, contact_person, address, email, status, category_id, subcategory_id, created_at, updated_at`

func scanVendor(row rowScanner) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.ContactPerson,
		&v.Address,
		&v.Email,
		&v.Status,
		&v.CategoryID,
		&v.SubCategoryID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// where renders the filter as a WHERE clause whose placeholders start at $1.
func (f VendorFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR contact_person ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	query := `INSERT INTO vendors (` + vendorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.ContactPerson,
		vendor.Address,
		vendor.Email,
		string(vendor.Status),
		vendor.CategoryID,
		vendor.SubCategoryID,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vendor",
			zap.Error(err),
			zap.String("name", vendor.Name),
			zap.String("email", vendor.Email),
		)
		return fmt.Errorf("create vendor %s: %w", vendor.Name, translate(err))
	}
	return nil
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	vendor, err := scanVendor(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor by ID", zap.Error(err), zap.String("vendor_id", id.String()))
		return nil, fmt.Errorf("find vendor by ID %s: %w", id.String(), err)
	}
	return vendor, nil
}

func (r *vendorRepository) FindAll(ctx context.Context, limit, offset int, filter VendorFilter) ([]*entity.Vendor, error) {
	where, args := filter.where()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + vendorColumns + ` FROM vendors`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all vendors",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.String("status", string(filter.Status)),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("find all vendors limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var vendors []*entity.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			r.log.Error("Failed to scan vendor row", zap.Error(err))
			return nil, fmt.Errorf("scan vendor row: %w", err)
		}
		vendors = append(vendors, vendor)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate vendor rows: %w", err)
	}
	return vendors, nil
}

func (r *vendorRepository) CountAll(ctx context.Context, filter VendorFilter) (int64, error) {
	where, args := filter.where()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vendors`+where, args...).Scan(&total); err != nil {
		r.log.Error("Database error counting vendors", zap.Error(err))
		return 0, fmt.Errorf("count vendors: %w", err)
	}
	return total, nil
}

func (r *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, contact_person = $3, address = $4, email = $5, status = $6,
		    category_id = $7, subcategory_id = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.ContactPerson,
		vendor.Address,
		vendor.Email,
		string(vendor.Status),
		vendor.CategoryID,
		vendor.SubCategoryID,
		vendor.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update vendor", zap.Error(err), zap.String("vendor_id", vendor.ID.String()))
		return fmt.Errorf("update vendor %s: %w", vendor.ID.String(), translate(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s: %w", vendor.ID.String(), ErrNotFound)
	}
	return nil
}

func (r *vendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete vendor", zap.Error(err), zap.String("vendor_id", id.String()))
		return fmt.Errorf("delete vendor %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s: %w", id.String(), ErrNotFound)
	}
	return nil
}
