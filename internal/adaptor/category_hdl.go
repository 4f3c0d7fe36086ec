package adaptor

import (
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CoreCategoryHandler struct {
	service usecase.CoreCategoryService
	log     *zap.Logger
}

func NewCoreCategoryHandler(service usecase.CoreCategoryService, log *zap.Logger) *CoreCategoryHandler {
	return &CoreCategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "core_category")),
	}
}

// GetCoreCategories handles GET /core
func (h *CoreCategoryHandler) GetCoreCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetCoreCategories(r.Context(), pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get core categories")
		return
	}
	utils.ResponseSuccess(w, "success", items)
}

func (h *CoreCategoryHandler) GetCoreCategory(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetCoreCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get core category")
		return
	}
	utils.ResponseSuccess(w, "success", item)
}

func (h *CoreCategoryHandler) CreateCoreCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CoreCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.CreateCoreCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create core category")
		return
	}
	utils.ResponseCreated(w, "Core category created successfully", item)
}

// UpdateCoreCategory serves PUT and PATCH.
func (h *CoreCategoryHandler) UpdateCoreCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CoreCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateCoreCategory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update core category")
		return
	}
	utils.ResponseSuccess(w, "Core category updated successfully", item)
}

func (h *CoreCategoryHandler) DeleteCoreCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCoreCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete core category")
		return
	}
	utils.ResponseSuccess(w, "Core category deleted successfully", nil)
}

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetCategories(r.Context(), pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get categories")
		return
	}
	utils.ResponseSuccess(w, "success", items)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get category")
		return
	}
	utils.ResponseSuccess(w, "success", item)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create category")
		return
	}
	utils.ResponseCreated(w, "Category created successfully", item)
}

// UpdateCategory serves PUT and PATCH.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update category")
		return
	}
	utils.ResponseSuccess(w, "Category updated successfully", item)
}

// DeleteCategory handles DELETE /categories/{id}. Subcategories go with it;
// vendors keep existing with the reference cleared.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete category")
		return
	}
	utils.ResponseSuccess(w, "Category deleted successfully", nil)
}
