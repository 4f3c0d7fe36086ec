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

type SubCategoryService interface {
	GetSubCategories(ctx context.Context, req *request.PaginatedRequest, categoryID string) (*response.PaginatedResponse[response.SubCategoryResponse], error)
	GetSubCategory(ctx context.Context, id string) (*response.SubCategoryResponse, error)
	CreateSubCategory(ctx context.Context, req *request.SubCategoryRequest) (*response.SubCategoryResponse, error)
	UpdateSubCategory(ctx context.Context, id string, req *request.SubCategoryRequest) (*response.SubCategoryResponse, error)
	PatchSubCategory(ctx context.Context, id string, req *request.SubCategoryUpdateRequest) (*response.SubCategoryResponse, error)
	DeleteSubCategory(ctx context.Context, id string) error
}

type subCategoryService struct {
	subs       repository.SubCategoryRepository
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewSubCategoryService(repo *repository.Repository, log *zap.Logger) SubCategoryService {
	return &subCategoryService{
		subs:       repo.SubCategory,
		categories: repo.Category,
		log:        log.With(zap.String("service", "subcategory")),
	}
}

func (s *subCategoryService) GetSubCategories(ctx context.Context, req *request.PaginatedRequest, categoryID string) (*response.PaginatedResponse[response.SubCategoryResponse], error) {
	var filter *uuid.UUID
	if categoryID != "" {
		id, err := parseID(categoryID, "category")
		if err != nil {
			return nil, err
		}
		filter = &id
	}

	items, err := s.subs.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	total, err := s.subs.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count subcategories: %w", err)
	}

	data := make([]response.SubCategoryResponse, len(items))
	for i, sub := range items {
		data[i] = response.SubCategoryToResponse(sub)
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *subCategoryService) GetSubCategory(ctx context.Context, id string) (*response.SubCategoryResponse, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.SubCategoryToResponse(sub)
	return &resp, nil
}

// CreateSubCategory rejects a category id that does not exist with a validation error.
func (s *subCategoryService) CreateSubCategory(ctx context.Context, req *request.SubCategoryRequest) (*response.SubCategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.category(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &entity.SubCategory{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Name:         req.Name,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, storeError(err, "subcategory")
	}

	s.log.Info("Subcategory created", zap.String("id", sub.ID.String()), zap.String("category_id", category.ID.String()))
	resp := response.SubCategoryToResponse(sub)
	return &resp, nil
}

func (s *subCategoryService) UpdateSubCategory(ctx context.Context, id string, req *request.SubCategoryRequest) (*response.SubCategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	return s.PatchSubCategory(ctx, id, &request.SubCategoryUpdateRequest{
		CategoryID: &req.CategoryID,
		Name:       &name,
	})
}

func (s *subCategoryService) PatchSubCategory(ctx context.Context, id string, req *request.SubCategoryUpdateRequest) (*response.SubCategoryResponse, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := s.category(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		sub.CategoryID = category.ID
		sub.CategoryName = category.Name
	}
	if req.Name != nil {
		sub.Name = *req.Name
	}

	sub.UpdatedAt = time.Now()
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, storeError(err, "subcategory")
	}

	resp := response.SubCategoryToResponse(sub)
	return &resp, nil
}

func (s *subCategoryService) DeleteSubCategory(ctx context.Context, id string) error {
	subID, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.subs.Delete(ctx, subID); err != nil {
		return storeError(err, "subcategory "+id)
	}
	s.log.Info("Subcategory deleted", zap.String("id", id))
	return nil
}

func (s *subCategoryService) find(ctx context.Context, id string) (*entity.SubCategory, error) {
	subID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.FindByID(ctx, subID)
	if err != nil {
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: subcategory %s", ErrNotFound, id)
	}
	return sub, nil
}

func (s *subCategoryService) category(ctx context.Context, raw string) (*entity.Category, error) {
	id, err := parseID(raw, "category")
	if err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, fieldError("category", fmt.Sprintf("Invalid pk %q - object does not exist", raw))
	}
	return category, nil
}
