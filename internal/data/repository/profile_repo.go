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

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	query := `
		SELECT id, user_id, profile_pic, address, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var p entity.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.ProfilePic,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find profile of user %s: %w", userID.String(), err)
	}
	return &p, nil
}

// Upsert keeps a single profile per user; the stored id and created_at are written back.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, profile_pic, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET profile_pic = EXCLUDED.profile_pic,
		    address = EXCLUDED.address,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.ProfilePic,
		profile.Address,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		r.log.Error("Failed to upsert profile", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return fmt.Errorf("upsert profile of user %s: %w", profile.UserID.String(), translate(err))
	}
	return nil
}
