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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userSelect = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.password, u.role_id, r.name,
	       u.phone_number, u.is_free, u.otp, u.otp_expires_at, u.refresh_token,
	       u.is_admin, u.is_staff, u.is_active, u.is_superadmin,
	       u.created_at, u.updated_at, u.deleted_at
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
`

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.RoleID,
		&user.RoleName,
		&user.PhoneNumber,
		&user.IsFree,
		&user.OTP,
		&user.OTPExpiresAt,
		&user.RefreshToken,
		&user.IsAdmin,
		&user.IsStaff,
		&user.IsActive,
		&user.IsSuperadmin,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, password, role_id,
		                   phone_number, is_free, is_admin, is_staff, is_active,
		                   is_superadmin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.RoleID,
		user.PhoneNumber,
		user.IsFree,
		user.IsAdmin,
		user.IsStaff,
		user.IsActive,
		user.IsSuperadmin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, translate(err))
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := userSelect + ` WHERE u.id = $1 AND u.deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := userSelect + ` WHERE u.email = $1 AND u.deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// FindAll retrieves paginated list of users
func (r *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := userSelect + `
		WHERE u.deleted_at IS NULL
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, password = $5,
		    role_id = $6, phone_number = $7, is_free = $8, otp = $9,
		    otp_expires_at = $10, refresh_token = $11, is_admin = $12,
		    is_staff = $13, is_active = $14, is_superadmin = $15, updated_at = $16
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.RoleID,
		user.PhoneNumber,
		user.IsFree,
		user.OTP,
		user.OTPExpiresAt,
		user.RefreshToken,
		user.IsAdmin,
		user.IsStaff,
		user.IsActive,
		user.IsSuperadmin,
		user.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete soft-deletes the user and removes its profile in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete user %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE users
		SET deleted_at = NOW(), is_active = false, refresh_token = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, id); err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to delete user profile", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete profile of user %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete user %s: %w", id.String(), err)
	}

	r.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
