package adaptor

import (
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VendorHandler struct {
	service usecase.VendorService
	log     *zap.Logger
}

func NewVendorHandler(service usecase.VendorService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log.With(zap.String("handler", "vendor")),
	}
}

// GetVendors handles GET /vendors?status=&category_id=&search=&page=&per_page=
func (h *VendorHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.VendorListRequest{
		PaginatedRequest: request.PaginationFromQuery(query),
		Status:           query.Get("status"),
		CategoryID:       query.Get("category_id"),
		Search:           query.Get("search"),
	}

	vendors, err := h.service.GetVendors(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get vendors")
		return
	}
	utils.ResponseSuccess(w, "success", vendors)
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.service.GetVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get vendor")
		return
	}
	utils.ResponseSuccess(w, "success", vendor)
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req request.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.service.CreateVendor(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create vendor")
		return
	}
	utils.ResponseCreated(w, "Vendor created successfully", vendor)
}

func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var req request.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.service.UpdateVendor(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vendor")
		return
	}
	utils.ResponseSuccess(w, "Vendor updated successfully", vendor)
}

func (h *VendorHandler) PatchVendor(w http.ResponseWriter, r *http.Request) {
	var req request.VendorUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.service.PatchVendor(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch vendor")
		return
	}
	utils.ResponseSuccess(w, "Vendor updated successfully", vendor)
}

func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete vendor")
		return
	}
	utils.ResponseSuccess(w, "Vendor deleted successfully", nil)
}
