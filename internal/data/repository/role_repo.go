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

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Role, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	query := `INSERT INTO roles (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, role.ID, role.Name, role.CreatedAt, role.UpdatedAt); err != nil {
		r.log.Error("Failed to create role", zap.Error(err), zap.String("name", role.Name))
		return fmt.Errorf("create role %s: %w", role.Name, translate(err))
	}
	return nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`

	var role entity.Role
	err := r.db.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find role by ID", zap.Error(err), zap.String("role_id", id.String()))
		return nil, fmt.Errorf("find role by ID %s: %w", id.String(), err)
	}
	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Role, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM roles
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all roles", zap.Error(err))
		return nil, fmt.Errorf("find all roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}
	return roles, nil
}

func (r *roleRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return total, nil
}

func (r *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	query := `UPDATE roles SET name = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, role.ID, role.Name, role.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update role", zap.Error(err), zap.String("role_id", role.ID.String()))
		return fmt.Errorf("update role %s: %w", role.ID.String(), translate(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", role.ID.String(), ErrNotFound)
	}
	return nil
}

// Delete detaches the role from its users, then removes it. It returns the
// number of users whose role was cleared.
func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete role %s: %w", id.String(), err)
	}

	detached, err := tx.Exec(ctx, `UPDATE users SET role_id = NULL, updated_at = NOW() WHERE role_id = $1`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to detach role from users", zap.Error(err), zap.String("role_id", id.String()))
		return 0, fmt.Errorf("detach role %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to delete role", zap.Error(err), zap.String("role_id", id.String()))
		return 0, fmt.Errorf("delete role %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("role %s: %w", id.String(), ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete role %s: %w", id.String(), err)
	}

	return detached.RowsAffected(), nil
}
