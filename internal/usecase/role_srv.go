package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"erp-backend/internal/data/entity"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/request"
	"erp-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoleService interface {
	GetRoles(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoleResponse], error)
	GetRole(ctx context.Context, id string) (*response.RoleResponse, error)
	CreateRole(ctx context.Context, req *request.RoleRequest) (*response.RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req *request.RoleRequest) (*response.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

type roleService struct {
	roles repository.RoleRepository
	log   *zap.Logger
}

func NewRoleService(roles repository.RoleRepository, log *zap.Logger) RoleService {
	return &roleService{
		roles: roles,
		log:   log.With(zap.String("service", "role")),
	}
}

func (s *roleService) GetRoles(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoleResponse], error) {
	roles, err := s.roles.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	total, err := s.roles.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count roles: %w", err)
	}

	items := make([]response.RoleResponse, len(roles))
	for i, role := range roles {
		items[i] = response.RoleToResponse(role)
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*response.RoleResponse, error) {
	roleID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", ErrNotFound, id)
	}

	resp := response.RoleToResponse(role)
	return &resp, nil
}

func (s *roleService) CreateRole(ctx context.Context, req *request.RoleRequest) (*response.RoleResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &entity.Role{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, storeError(err, "role")
	}

	s.log.Info("Role created", zap.String("role_id", role.ID.String()), zap.String("name", role.Name))
	resp := response.RoleToResponse(role)
	return &resp, nil
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req *request.RoleRequest) (*response.RoleResponse, error) {
	roleID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", ErrNotFound, id)
	}

	role.Name = req.Name
	role.UpdatedAt = time.Now()
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, storeError(err, "role")
	}

	resp := response.RoleToResponse(role)
	return &resp, nil
}

// DeleteRole removes the role; users holding it keep their account with no role.
func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	roleID, err := parseID(id, "id")
	if err != nil {
		return err
	}

	detached, err := s.roles.Delete(ctx, roleID)
	if err != nil {
		s.log.Error("Failed to delete role", zap.Error(err), zap.String("role_id", id))
		return storeError(err, "role "+id)
	}

	s.log.Info("Role deleted", zap.String("role_id", id), zap.Int64("detached_users", detached))
	return nil
}
