package wire

import (
	"net/http"

	"erp-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures authenticated user routes and the admin-only user and role management.
func wireUser(r chi.Router, h *adaptor.Handler, auth, admin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/user/me", h.User.Me)
		r.Post("/user/me/password", h.User.ChangePassword)

		// self or admin, checked by the service
		r.Put("/update/{id}", h.User.UpdateUser)
		r.Patch("/update/{id}", h.User.UpdateUser)
		r.Delete("/delete/{id}", h.User.DeleteUser)

		r.Get("/profile/{email}", h.Profile.GetProfile)
		r.Put("/profile/{email}", h.Profile.UpdateProfile)
	})

	r.With(auth, admin).Route("/api/user", func(r chi.Router) {
		r.Get("/", h.User.GetAllUsers)
		r.Get("/{id}", h.User.GetUser)
	})

	r.With(auth, admin).Route("/user/role", func(r chi.Router) {
		r.Get("/", h.Role.GetRoles)
		r.Post("/", h.Role.CreateRole)
		r.Get("/{id}", h.Role.GetRole)
		r.Put("/{id}", h.Role.UpdateRole)
		r.Patch("/{id}", h.Role.UpdateRole)
		r.Delete("/{id}", h.Role.DeleteRole)
	})
}
