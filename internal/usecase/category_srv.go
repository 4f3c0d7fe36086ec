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

type CoreCategoryService interface {
	GetCoreCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	GetCoreCategory(ctx context.Context, id string) (*response.CategoryResponse, error)
	CreateCoreCategory(ctx context.Context, req *request.CoreCategoryRequest) (*response.CategoryResponse, error)
	UpdateCoreCategory(ctx context.Context, id string, req *request.CoreCategoryRequest) (*response.CategoryResponse, error)
	DeleteCoreCategory(ctx context.Context, id string) error
}

type coreCategoryService struct {
	repo repository.CoreCategoryRepository
	log  *zap.Logger
}

func NewCoreCategoryService(repo repository.CoreCategoryRepository, log *zap.Logger) CoreCategoryService {
	return &coreCategoryService{repo: repo, log: log.With(zap.String("service", "core_category"))}
}

func (s *coreCategoryService) GetCoreCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	items, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list core categories: %w", err)
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count core categories: %w", err)
	}

	data := make([]response.CategoryResponse, len(items))
	for i, c := range items {
		data[i] = response.CoreCategoryToResponse(c)
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *coreCategoryService) GetCoreCategory(ctx context.Context, id string) (*response.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.CoreCategoryToResponse(c)
	return &resp, nil
}

func (s *coreCategoryService) CreateCoreCategory(ctx context.Context, req *request.CoreCategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &entity.CoreCategory{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError(err, "core category")
	}

	s.log.Info("Core category created", zap.String("id", c.ID.String()))
	resp := response.CoreCategoryToResponse(c)
	return &resp, nil
}

func (s *coreCategoryService) UpdateCoreCategory(ctx context.Context, id string, req *request.CoreCategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, storeError(err, "core category")
	}

	resp := response.CoreCategoryToResponse(c)
	return &resp, nil
}

func (s *coreCategoryService) DeleteCoreCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return storeError(err, "core category "+id)
	}
	s.log.Info("Core category deleted", zap.String("id", id))
	return nil
}

func (s *coreCategoryService) find(ctx context.Context, id string) (*entity.CoreCategory, error) {
	categoryID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find core category: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: core category %s", ErrNotFound, id)
	}
	return c, nil
}

type CategoryService interface {
	GetCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	GetCategory(ctx context.Context, id string) (*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req *request.CategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{repo: repo, log: log.With(zap.String("service", "category"))}
}

func (s *categoryService) GetCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	items, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	data := make([]response.CategoryResponse, len(items))
	for i, c := range items {
		data[i] = response.CategoryToResponse(c)
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*response.CategoryResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.CategoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError(err, "category with this name")
	}

	s.log.Info("Category created", zap.String("id", c.ID.String()), zap.String("name", c.Name))
	resp := response.CategoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, storeError(err, "category with this name")
	}

	resp := response.CategoryToResponse(c)
	return &resp, nil
}

// DeleteCategory also removes its subcategories and clears vendor references.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return storeError(err, "category "+id)
	}
	s.log.Info("Category deleted", zap.String("id", id))
	return nil
}

func (s *categoryService) find(ctx context.Context, id string) (*entity.Category, error) {
	categoryID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	return c, nil
}
