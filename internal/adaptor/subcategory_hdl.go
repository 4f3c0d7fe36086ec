package adaptor

import (
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SubCategoryHandler struct {
	service usecase.SubCategoryService
	log     *zap.Logger
}

func NewSubCategoryHandler(service usecase.SubCategoryService, log *zap.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "subcategory")),
	}
}

// GetSubCategories handles GET /sub-category, optionally filtered by ?category=<id>
func (h *SubCategoryHandler) GetSubCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetSubCategories(r.Context(), pagination(r), r.URL.Query().Get("category"))
	if err != nil {
		handleServiceError(w, h.log, err, "get subcategories")
		return
	}
	utils.ResponseSuccess(w, "success", items)
}

func (h *SubCategoryHandler) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetSubCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get subcategory")
		return
	}
	utils.ResponseSuccess(w, "success", item)
}

func (h *SubCategoryHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req request.SubCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.CreateSubCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create subcategory")
		return
	}
	utils.ResponseCreated(w, "Subcategory created successfully", item)
}

func (h *SubCategoryHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req request.SubCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateSubCategory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update subcategory")
		return
	}
	utils.ResponseSuccess(w, "Subcategory updated successfully", item)
}

func (h *SubCategoryHandler) PatchSubCategory(w http.ResponseWriter, r *http.Request) {
	var req request.SubCategoryUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.PatchSubCategory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch subcategory")
		return
	}
	utils.ResponseSuccess(w, "Subcategory updated successfully", item)
}

func (h *SubCategoryHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSubCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete subcategory")
		return
	}
	utils.ResponseSuccess(w, "Subcategory deleted successfully", nil)
}
