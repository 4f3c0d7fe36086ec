package usecase

import (
	"context"
	"testing"

	"erp-backend/internal/data/entity"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type referenceFixture struct {
	categories CategoryService
	subs       SubCategoryService
	vendors    VendorService
}

func newReferenceFixture() *referenceFixture {
	repo := &repository.Repository{
		Category:    newFakeCategoryRepo(),
		SubCategory: newFakeSubCategoryRepo(),
		Vendor:      newFakeVendorRepo(),
	}
	return &referenceFixture{
		categories: NewCategoryService(repo.Category, zap.NewNop()),
		subs:       NewSubCategoryService(repo, zap.NewNop()),
		vendors:    NewVendorService(repo, zap.NewNop()),
	}
}

func TestCreateSubCategory_UnknownCategory(t *testing.T) {
	f := newReferenceFixture()

	_, err := f.subs.CreateSubCategory(context.Background(), &request.SubCategoryRequest{
		CategoryID: uuid.NewString(),
		Name:       "Fasteners",
	})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
}

func TestCreateSubCategory(t *testing.T) {
	f := newReferenceFixture()
	ctx := context.Background()

	category, err := f.categories.CreateCategory(ctx, &request.CategoryRequest{Name: "Hardware"})
	require.NoError(t, err)

	sub, err := f.subs.CreateSubCategory(ctx, &request.SubCategoryRequest{CategoryID: category.ID, Name: "Fasteners"})
	require.NoError(t, err)
	assert.Equal(t, category.ID, sub.CategoryID)
	assert.Equal(t, "Hardware", sub.CategoryName)

	list, err := f.subs.GetSubCategories(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, category.ID)
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	f := newReferenceFixture()
	ctx := context.Background()

	_, err := f.categories.CreateCategory(ctx, &request.CategoryRequest{Name: "Hardware"})
	require.NoError(t, err)
	_, err = f.categories.CreateCategory(ctx, &request.CategoryRequest{Name: "Hardware"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateVendor_DefaultsToPending(t *testing.T) {
	f := newReferenceFixture()

	vendor, err := f.vendors.CreateVendor(context.Background(), &request.VendorRequest{
		Name:          "Acme",
		ContactPerson: "Grace Hopper",
		Address:       "1 Harbour Road",
		Email:         "sales@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusPending, vendor.Status)
}

func TestCreateVendor_Validation(t *testing.T) {
	f := newReferenceFixture()
	ctx := context.Background()

	_, err := f.vendors.CreateVendor(ctx, &request.VendorRequest{Name: "Acme", Email: "sales@acme.example"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required", verr.Fields["contact_person"])
	assert.Equal(t, "This field is required", verr.Fields["address"])

	_, err = f.vendors.CreateVendor(ctx, &request.VendorRequest{
		Name: "Acme", ContactPerson: "Grace Hopper", Address: "1 Harbour Road",
		Email: "sales@acme.example", Status: "closed",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.vendors.CreateVendor(ctx, &request.VendorRequest{
		Name: "Acme", ContactPerson: "Grace Hopper", Address: "1 Harbour Road",
		Email: "sales@acme.example", CategoryID: ptr(uuid.NewString()),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPatchVendor(t *testing.T) {
	f := newReferenceFixture()
	ctx := context.Background()

	category, err := f.categories.CreateCategory(ctx, &request.CategoryRequest{Name: "Logistics"})
	require.NoError(t, err)

	vendor, err := f.vendors.CreateVendor(ctx, &request.VendorRequest{
		Name:          "Shipfast",
		ContactPerson: "Linus Pauling",
		Address:       "42 Dock Street",
		Email:         "ops@shipfast.example",
		Status:        "review",
		CategoryID:    &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusReview, vendor.Status)

	patched, err := f.vendors.PatchVendor(ctx, vendor.ID, &request.VendorUpdateRequest{Status: ptr("on-hold")})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusOnHold, patched.Status)
	assert.Equal(t, "Shipfast", patched.Name)
	require.NotNil(t, patched.CategoryID)

	list, err := f.vendors.GetVendors(ctx, &request.VendorListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Status:           "on-hold",
		CategoryID:       category.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Pagination.Total)

	replaced, err := f.vendors.UpdateVendor(ctx, vendor.ID, &request.VendorRequest{
		Name:          "Shipfast Ltd",
		ContactPerson: "Linus Pauling",
		Address:       "42 Dock Street",
		Email:         "ops@shipfast.example",
	})
	require.NoError(t, err)
	assert.Nil(t, replaced.CategoryID)
	assert.Equal(t, entity.VendorStatusOnHold, replaced.Status)
}

func TestDeleteVendor_Missing(t *testing.T) {
	f := newReferenceFixture()
	assert.ErrorIs(t, f.vendors.DeleteVendor(context.Background(), uuid.NewString()), ErrNotFound)
	assert.ErrorIs(t, f.vendors.DeleteVendor(context.Background(), "not-a-uuid"), ErrValidation)
}
