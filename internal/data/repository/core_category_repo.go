package repository

import (
	"context"
	"errors"
	"fmt"

	"erp-backend/internal/data/entity"
	"erp-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CoreCategoryRepository interface {
	Create(ctx context.Context, category *entity.CoreCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CoreCategory, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.CoreCategory, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, category *entity.CoreCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type coreCategoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCoreCategoryRepository(db database.PgxIface, log *zap.Logger) CoreCategoryRepository {
	return &coreCategoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "core_category")),
	}
}

func (r *coreCategoryRepository) Create(ctx context.Context, category *entity.CoreCategory) error {
	query := `INSERT INTO core_categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create core category", zap.Error(err), zap.String("name", category.Name))
		return fmt.Errorf("create core category %s: %w", category.Name, translate(err))
	}
	return nil
}

func (r *coreCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CoreCategory, error) {
	query := `SELECT id, name, created_at, updated_at FROM core_categories WHERE id = $1`

	var c entity.CoreCategory
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find core category", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find core category %s: %w", id.String(), err)
	}
	return &c, nil
}

func (r *coreCategoryRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.CoreCategory, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM core_categories
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find core categories", zap.Error(err))
		return nil, fmt.Errorf("find all core categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.CoreCategory
	for rows.Next() {
		var c entity.CoreCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan core category row: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate core category rows: %w", err)
	}
	return categories, nil
}

func (r *coreCategoryRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM core_categories`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count core categories: %w", err)
	}
	return total, nil
}

func (r *coreCategoryRepository) Update(ctx context.Context, category *entity.CoreCategory) error {
	query := `UPDATE core_categories SET name = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, category.ID, category.Name, category.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update core category", zap.Error(err), zap.String("id", category.ID.String()))
		return fmt.Errorf("update core category %s: %w", category.ID.String(), translate(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("core category %s: %w", category.ID.String(), ErrNotFound)
	}
	return nil
}

func (r *coreCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM core_categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete core category", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete core category %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("core category %s: %w", id.String(), ErrNotFound)
	}
	return nil
}
