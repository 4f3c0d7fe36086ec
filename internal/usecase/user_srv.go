package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/request"
	"erp-backend/internal/dto/response"
	"erp-backend/pkg/events"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, actor Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, actor Actor, userID string) error
}

type userService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	notify *notifier
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, notify *notifier, log *zap.Logger) UserService {
	return &userService{
		users:  repo.User,
		roles:  repo.Role,
		notify: notify,
		log:    log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID(userID, "id")
	if err != nil {
		return nil, err
	}

	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.users.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.Limit()),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.users.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

// UpdateUser changes profile fields of a user. Privilege flags are only
// applied for admins; other callers may only update themselves.
func (us *userService) UpdateUser(ctx context.Context, actor Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	id, err := parseID(userID, "id")
	if err != nil {
		return nil, err
	}
	if !actor.canManage(id) {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.IsFree != nil {
		user.IsFree = *req.IsFree
	}
	if req.RoleID != nil {
		roleID := uuid.MustParse(*req.RoleID)
		role, err := us.roles.FindByID(ctx, roleID)
		if err != nil {
			return nil, fmt.Errorf("find role: %w", err)
		}
		if role == nil {
			return nil, fieldError("role_id", "Role does not exist")
		}
		user.RoleID = &role.ID
		user.RoleName = &role.Name
	}

	if actor.IsAdmin {
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}
		if req.IsStaff != nil {
			user.IsStaff = *req.IsStaff
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
	} else if req.IsAdmin != nil || req.IsStaff != nil || req.IsActive != nil {
		us.log.Warn("Non-admin tried to change account flags", zap.String("user_id", id.String()))
		return nil, ErrForbidden
	}

	user.UpdatedAt = time.Now()
	if err := us.users.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, storeError(err, "user")
	}

	us.log.Info("User updated", zap.String("user_id", id.String()), zap.String("actor", actor.ID.String()))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := us.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return fieldError("old_password", "Wrong password")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hashed
	user.RefreshToken = nil
	user.UpdatedAt = time.Now()
	if err := us.users.Update(ctx, user); err != nil {
		return storeError(err, "user")
	}

	us.notify.publish(events.SubjectPasswordChanged, user.ID, user.Email)
	us.log.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (us *userService) DeleteUser(ctx context.Context, actor Actor, userID string) error {
	id, err := parseID(userID, "id")
	if err != nil {
		return err
	}
	if !actor.canManage(id) {
		return ErrForbidden
	}

	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	if err := us.users.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("id", userID))
		return storeError(err, "user")
	}

	us.notify.publish(events.SubjectUserDeleted, user.ID, user.Email)
	us.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("email", user.Email))
	return nil
}
