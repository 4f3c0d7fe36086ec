package adaptor

import (
	"net/http"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With(zap.String("handler", "account")),
	}
}

// CreateUser handles POST /create and POST /api/create_user
func (h *AccountHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "Account created. Check your email to activate it.", user)
}

// IssueTokens handles POST /user/token
func (h *AccountHandler) IssueTokens(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.service.IssueTokens(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "issue tokens")
		return
	}

	utils.ResponseSuccess(w, "Login successful", pair)
}

// RefreshTokens handles POST /user/token/refresh
func (h *AccountHandler) RefreshTokens(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	access, err := h.service.RefreshTokens(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh tokens")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", access)
}

// Activate handles GET /activate/{uid}/{token}
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Activate(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "token")); err != nil {
		handleServiceError(w, h.log, err, "activate account")
		return
	}

	utils.ResponseSuccess(w, "Account activated successfully", nil)
}

// RequestPasswordReset handles GET /user/password-rest-email/{email}
func (h *AccountHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RequestPasswordReset(r.Context(), chi.URLParam(r, "email")); err != nil {
		handleServiceError(w, h.log, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, "Password reset link sent", nil)
}

// ResetPassword handles POST /user/password-change
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password has been reset", nil)
}

// SendOTP handles POST /user/otp
func (h *AccountHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SendOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", nil)
}

// VerifyOTP handles POST /user/otp/verify
func (h *AccountHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.VerifyOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}
