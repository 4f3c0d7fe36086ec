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

type VendorService interface {
	GetVendors(ctx context.Context, req *request.VendorListRequest) (*response.PaginatedResponse[response.VendorResponse], error)
	GetVendor(ctx context.Context, id string) (*response.VendorResponse, error)
	CreateVendor(ctx context.Context, req *request.VendorRequest) (*response.VendorResponse, error)
	UpdateVendor(ctx context.Context, id string, req *request.VendorRequest) (*response.VendorResponse, error)
	PatchVendor(ctx context.Context, id string, req *request.VendorUpdateRequest) (*response.VendorResponse, error)
	DeleteVendor(ctx context.Context, id string) error
}

type vendorService struct {
	vendors       repository.VendorRepository
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	log           *zap.Logger
}

func NewVendorService(repo *repository.Repository, log *zap.Logger) VendorService {
	return &vendorService{
		vendors:       repo.Vendor,
		categories:    repo.Category,
		subCategories: repo.SubCategory,
		log:           log.With(zap.String("service", "vendor")),
	}
}

func (s *vendorService) GetVendors(ctx context.Context, req *request.VendorListRequest) (*response.PaginatedResponse[response.VendorResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.VendorFilter{
		Status: entity.VendorStatus(req.Status),
		Search: req.Search,
	}
	if req.CategoryID != "" {
		id, err := parseID(req.CategoryID, "category_id")
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &id
	}

	vendors, err := s.vendors.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	total, err := s.vendors.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count vendors: %w", err)
	}

	data := make([]response.VendorResponse, len(vendors))
	for i, v := range vendors {
		data[i] = response.VendorToResponse(v)
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *vendorService) GetVendor(ctx context.Context, id string) (*response.VendorResponse, error) {
	vendor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

// CreateVendor stores a new vendor. A missing status defaults to pending.
func (s *vendorService) CreateVendor(ctx context.Context, req *request.VendorRequest) (*response.VendorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	vendor := &entity.Vendor{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Status:       entity.VendorStatusPending,
	}
	if err := s.apply(ctx, vendor, fullUpdate(req)); err != nil {
		return nil, err
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		s.log.Error("Failed to create vendor", zap.Error(err), zap.String("name", vendor.Name))
		return nil, storeError(err, "vendor with this email")
	}

	s.log.Info("Vendor created",
		zap.String("id", vendor.ID.String()),
		zap.String("status", string(vendor.Status)),
	)
	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

// UpdateVendor replaces every field. Omitted references are cleared and an
// omitted status keeps the current one.
func (s *vendorService) UpdateVendor(ctx context.Context, id string, req *request.VendorRequest) (*response.VendorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	vendor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.CategoryID = nil
	vendor.SubCategoryID = nil
	if err := s.apply(ctx, vendor, fullUpdate(req)); err != nil {
		return nil, err
	}

	return s.save(ctx, vendor)
}

func (s *vendorService) PatchVendor(ctx context.Context, id string, req *request.VendorUpdateRequest) (*response.VendorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	vendor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, vendor, req); err != nil {
		return nil, err
	}

	return s.save(ctx, vendor)
}

func (s *vendorService) DeleteVendor(ctx context.Context, id string) error {
	vendorID, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.vendors.Delete(ctx, vendorID); err != nil {
		return storeError(err, "vendor "+id)
	}
	s.log.Info("Vendor deleted", zap.String("id", id))
	return nil
}

func (s *vendorService) save(ctx context.Context, vendor *entity.Vendor) (*response.VendorResponse, error) {
	vendor.UpdatedAt = time.Now()
	if err := s.vendors.Update(ctx, vendor); err != nil {
		s.log.Error("Failed to update vendor", zap.Error(err), zap.String("id", vendor.ID.String()))
		return nil, storeError(err, "vendor with this email")
	}

	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

// apply copies the set fields of req onto vendor, resolving references.
func (s *vendorService) apply(ctx context.Context, vendor *entity.Vendor, req *request.VendorUpdateRequest) error {
	if req.Name != nil {
		vendor.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactPerson != nil {
		vendor.ContactPerson = strings.TrimSpace(*req.ContactPerson)
	}
	if req.Address != nil {
		vendor.Address = strings.TrimSpace(*req.Address)
	}
	if req.Email != nil {
		vendor.Email = strings.TrimSpace(*req.Email)
	}
	if req.Status != nil && *req.Status != "" {
		status := entity.VendorStatus(*req.Status)
		if !status.Valid() {
			return fieldError("status", fmt.Sprintf("%q is not a valid choice", *req.Status))
		}
		vendor.Status = status
	}

	if req.CategoryID != nil {
		id, err := parseID(*req.CategoryID, "category")
		if err != nil {
			return err
		}
		category, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}
		if category == nil {
			return fieldError("category", fmt.Sprintf("Invalid pk %q - object does not exist", *req.CategoryID))
		}
		vendor.CategoryID = &category.ID
	}

	if req.SubCategoryID != nil {
		id, err := parseID(*req.SubCategoryID, "subcategory")
		if err != nil {
			return err
		}
		sub, err := s.subCategories.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find subcategory: %w", err)
		}
		if sub == nil {
			return fieldError("subcategory", fmt.Sprintf("Invalid pk %q - object does not exist", *req.SubCategoryID))
		}
		vendor.SubCategoryID = &sub.ID
	}

	return nil
}

func (s *vendorService) find(ctx context.Context, id string) (*entity.Vendor, error) {
	vendorID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, id)
	}
	return vendor, nil
}

func fullUpdate(req *request.VendorRequest) *request.VendorUpdateRequest {
	update := &request.VendorUpdateRequest{
		Name:          &req.Name,
		ContactPerson: &req.ContactPerson,
		Address:       &req.Address,
		Email:         &req.Email,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}
	if req.Status != "" {
		update.Status = &req.Status
	}
	return update
}
