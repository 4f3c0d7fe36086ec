package wire

import (
	"erp-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAccount registers the public registration, token and recovery routes.
func wireAccount(r chi.Router, h *adaptor.AccountHandler) {
	r.Post("/create", h.CreateUser)
	r.Post("/api/create_user", h.CreateUser)

	r.Post("/user/token", h.IssueTokens)
	r.Post("/user/token/refresh", h.RefreshTokens)

	r.Get("/activate/{uid}/{token}", h.Activate)
	r.Get("/user/password-rest-email/{email}", h.RequestPasswordReset)
	r.Post("/user/password-change", h.ResetPassword)

	r.Post("/user/otp", h.SendOTP)
	r.Post("/user/otp/verify", h.VerifyOTP)
}
