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

type SubCategoryRepository interface {
	Create(ctx context.Context, sub *entity.SubCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error)
	FindAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]*entity.SubCategory, error)
	CountAll(ctx context.Context, categoryID *uuid.UUID) (int64, error)
	Update(ctx context.Context, sub *entity.SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type subCategoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubCategoryRepository(db database.PgxIface, log *zap.Logger) SubCategoryRepository {
	return &subCategoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "subcategory")),
	}
}

const subCategorySelect = `
	SELECT s.id, s.category_id, c.name, s.name, s.created_at, s.updated_at
	FROM subcategories s
	JOIN categories c ON c.id = s.category_id
`

func scanSubCategory(row rowScanner) (*entity.SubCategory, error) {
	var s entity.SubCategory
	if err := row.Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subCategoryRepository) Create(ctx context.Context, sub *entity.SubCategory) error {
	query := `
		INSERT INTO subcategories (id, category_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, sub.ID, sub.CategoryID, sub.Name, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create subcategory",
			zap.Error(err),
			zap.String("name", sub.Name),
			zap.String("category_id", sub.CategoryID.String()),
		)
		return fmt.Errorf("create subcategory %s: %w", sub.Name, translate(err))
	}
	return nil
}

func (r *subCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error) {
	sub, err := scanSubCategory(r.db.QueryRow(ctx, subCategorySelect+` WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subcategory by ID", zap.Error(err), zap.String("subcategory_id", id.String()))
		return nil, fmt.Errorf("find subcategory by ID %s: %w", id.String(), err)
	}
	return sub, nil
}

func (r *subCategoryRepository) FindAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]*entity.SubCategory, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(subCategorySelect)

	args := []any{}
	argCount := 1

	if categoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE s.category_id = $%d", argCount))
		args = append(args, *categoryID)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.name, s.name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all subcategories",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all subcategories limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var subs []*entity.SubCategory
	for rows.Next() {
		sub, err := scanSubCategory(rows)
		if err != nil {
			r.log.Error("Failed to scan subcategory row", zap.Error(err))
			return nil, fmt.Errorf("scan subcategory row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategory rows: %w", err)
	}
	return subs, nil
}

func (r *subCategoryRepository) CountAll(ctx context.Context, categoryID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM subcategories`
	args := []any{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Database error counting subcategories", zap.Error(err))
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return total, nil
}

func (r *subCategoryRepository) Update(ctx context.Context, sub *entity.SubCategory) error {
	query := `UPDATE subcategories SET category_id = $2, name = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, sub.ID, sub.CategoryID, sub.Name, sub.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update subcategory", zap.Error(err), zap.String("subcategory_id", sub.ID.String()))
		return fmt.Errorf("update subcategory %s: %w", sub.ID.String(), translate(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subcategory %s: %w", sub.ID.String(), ErrNotFound)
	}
	return nil
}

func (r *subCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete subcategory", zap.Error(err), zap.String("subcategory_id", id.String()))
		return fmt.Errorf("delete subcategory %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subcategory %s: %w", id.String(), ErrNotFound)
	}
	return nil
}
