package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"erp-backend/internal/data/entity"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/response"
	"erp-backend/pkg/storage"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxAddressLength = 200

var pictureExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload is a file received with a profile update.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProfileUpdate struct {
	Address *string
	Picture *Upload
}

type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor Actor, email string, update ProfileUpdate) (*response.ProfileResponse, error)
}

type profileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	storage  storage.Storage
	log      *zap.Logger
}

func NewProfileService(repo *repository.Repository, store storage.Storage, log *zap.Logger) ProfileService {
	return &profileService{
		users:    repo.User,
		profiles: repo.Profile,
		storage:  store,
		log:      log.With(zap.String("service", "profile")),
	}
}

// GetProfile returns the profile of a user, creating an empty one on first access.
func (s *profileService) GetProfile(ctx context.Context, email string) (*response.ProfileResponse, error) {
	user, profile, err := s.load(ctx, email)
	if err != nil {
		return nil, err
	}

	resp := response.ProfileToResponse(profile, user.Email)
	return &resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, actor Actor, email string, update ProfileUpdate) (*response.ProfileResponse, error) {
	if update.Address != nil && len([]rune(*update.Address)) > maxAddressLength {
		return nil, fieldError("address", fmt.Sprintf("Maximum length is %d", maxAddressLength))
	}

	user, profile, err := s.load(ctx, email)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(user.ID) {
		return nil, ErrForbidden
	}

	if update.Address != nil {
		address := strings.TrimSpace(*update.Address)
		profile.Address = &address
	}

	if pic := update.Picture; pic != nil {
		ext := strings.ToLower(filepath.Ext(pic.Filename))
		if !pictureExtensions[ext] {
			return nil, fieldError("profile_pic", "Upload a valid image (jpg, jpeg, png, gif, webp)")
		}

		key := fmt.Sprintf("user/profile_picture/%s/%s%s", user.ID, uuid.NewString(), ext)
		url, err := s.storage.Upload(ctx, key, pic.Body, pic.Size, pic.ContentType)
		if errors.Is(err, storage.ErrDisabled) {
			return nil, fieldError("profile_pic", "File uploads are not enabled")
		}
		if err != nil {
			s.log.Error("Failed to upload profile picture", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("upload profile picture: %w", err)
		}
		profile.ProfilePic = &url
	}

	profile.UpdatedAt = time.Now()
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, storeError(err, "profile")
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))
	resp := response.ProfileToResponse(profile, user.Email)
	return &resp, nil
}

func (s *profileService) load(ctx context.Context, email string) (*entity.User, *entity.UserProfile, error) {
	email = utils.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("find profile: %w", err)
	}
	if profile == nil {
		now := time.Now()
		profile = &entity.UserProfile{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:       user.ID,
		}
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			return nil, nil, storeError(err, "profile")
		}
	}
	return user, profile, nil
}
