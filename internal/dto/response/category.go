package response

import (
	"time"

	"erp-backend/internal/data/entity"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubCategoryResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type VendorResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	ContactPerson string              `json:"contact_person"`
	Address       string              `json:"address"`
	Email         string              `json:"email"`
	Status        entity.VendorStatus `json:"status"`
	CategoryID    *string             `json:"category"`
	SubCategoryID *string             `json:"subcategory"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Helper converters
func CoreCategoryToResponse(c *entity.CoreCategory) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func SubCategoryToResponse(s *entity.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:           s.ID.String(),
		CategoryID:   s.CategoryID.String(),
		CategoryName: s.CategoryName,
		Name:         s.Name,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func VendorToResponse(v *entity.Vendor) VendorResponse {
	resp := VendorResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		ContactPerson: v.ContactPerson,
		Address:       v.Address,
		Email:         v.Email,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.CategoryID != nil {
		id := v.CategoryID.String()
		resp.CategoryID = &id
	}
	if v.SubCategoryID != nil {
		id := v.SubCategoryID.String()
		resp.SubCategoryID = &id
	}
	return resp
}
