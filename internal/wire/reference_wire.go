package wire

import (
	"erp-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReference registers the public CRUD routes for categories and vendors.
func wireReference(r chi.Router, h *adaptor.Handler) {
	r.Route("/core", func(r chi.Router) {
		r.Get("/", h.CoreCategory.GetCoreCategories)
		r.Post("/", h.CoreCategory.CreateCoreCategory)
		r.Get("/{id}", h.CoreCategory.GetCoreCategory)
		r.Put("/{id}", h.CoreCategory.UpdateCoreCategory)
		r.Patch("/{id}", h.CoreCategory.UpdateCoreCategory)
		r.Delete("/{id}", h.CoreCategory.DeleteCoreCategory)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Category.GetCategories)
		r.Post("/", h.Category.CreateCategory)
		r.Get("/{id}", h.Category.GetCategory)
		r.Put("/{id}", h.Category.UpdateCategory)
		r.Patch("/{id}", h.Category.UpdateCategory)
		r.Delete("/{id}", h.Category.DeleteCategory)
	})

	r.Route("/sub-category", func(r chi.Router) {
		r.Get("/", h.SubCategory.GetSubCategories)
		r.Post("/", h.SubCategory.CreateSubCategory)
		r.Get("/{id}", h.SubCategory.GetSubCategory)
		r.Put("/{id}", h.SubCategory.UpdateSubCategory)
		r.Patch("/{id}", h.SubCategory.PatchSubCategory)
		r.Delete("/{id}", h.SubCategory.DeleteSubCategory)
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.Vendor.GetVendors)
		r.Post("/", h.Vendor.CreateVendor)
		r.Get("/{id}", h.Vendor.GetVendor)
		r.Put("/{id}", h.Vendor.UpdateVendor)
		r.Patch("/{id}", h.Vendor.PatchVendor)
		r.Delete("/{id}", h.Vendor.DeleteVendor)
	})
}
