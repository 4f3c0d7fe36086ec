package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Account      *AccountHandler
	User         *UserHandler
	Role         *RoleHandler
	Profile      *ProfileHandler
	CoreCategory *CoreCategoryHandler
	Category     *CategoryHandler
	SubCategory  *SubCategoryHandler
	Vendor       *VendorHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Account:      NewAccountHandler(service.Account, log),
		User:         NewUserHandler(service.User, log),
		Role:         NewRoleHandler(service.Role, log),
		Profile:      NewProfileHandler(service.Profile, log),
		CoreCategory: NewCoreCategoryHandler(service.CoreCategory, log),
		Category:     NewCategoryHandler(service.Category, log),
		SubCategory:  NewSubCategoryHandler(service.SubCategory, log),
		Vendor:       NewVendorHandler(service.Vendor, log),
	}
}

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Any("fields", verr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrActivation):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, usecase.ErrActivation.Error(), nil)

	case errors.Is(err, usecase.ErrToken):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, usecase.ErrToken.Error(), nil)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Not found.")

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInactiveAccount):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads the request body into dst, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// actorFrom returns the authenticated caller set by the auth middleware.
func actorFrom(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: userID, IsAdmin: utils.IsAdminFromContext(r.Context())}, true
}

func pagination(r *http.Request) *request.PaginatedRequest {
	req := request.PaginationFromQuery(r.URL.Query())
	return &req
}
