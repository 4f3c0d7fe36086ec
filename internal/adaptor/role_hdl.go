package adaptor

import (
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoleHandler struct {
	service usecase.RoleService
	log     *zap.Logger
}

func NewRoleHandler(service usecase.RoleService, log *zap.Logger) *RoleHandler {
	return &RoleHandler{
		service: service,
		log:     log.With(zap.String("handler", "role")),
	}
}

func (h *RoleHandler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.GetRoles(r.Context(), pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get roles")
		return
	}
	utils.ResponseSuccess(w, "success", roles)
}

func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get role")
		return
	}
	utils.ResponseSuccess(w, "success", role)
}

func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req request.RoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := h.service.CreateRole(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create role")
		return
	}
	utils.ResponseCreated(w, "Role created successfully", role)
}

// UpdateRole serves both PUT and PATCH; a role has a single field.
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req request.RoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := h.service.UpdateRole(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update role")
		return
	}
	utils.ResponseSuccess(w, "Role updated successfully", role)
}

func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete role")
		return
	}
	utils.ResponseSuccess(w, "Role deleted successfully", nil)
}
