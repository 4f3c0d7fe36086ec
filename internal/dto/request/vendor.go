package request

type VendorRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	ContactPerson string  `json:"contact_person" validate:"required,max=300"`
	Address       string  `json:"address" validate:"required,max=255"`
	Email         string  `json:"email" validate:"required,email,max=50"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive pending review on-hold suspend"`
	CategoryID    *string `json:"category,omitempty" validate:"omitempty,uuid"`
	SubCategoryID *string `json:"subcategory,omitempty" validate:"omitempty,uuid"`
}

type VendorUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=300"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=50"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending review on-hold suspend"`
	CategoryID    *string `json:"category,omitempty" validate:"omitempty,uuid"`
	SubCategoryID *string `json:"subcategory,omitempty" validate:"omitempty,uuid"`
}

type VendorListRequest struct {
	PaginatedRequest `validate:"-"`
	Status           string `validate:"omitempty,oneof=active inactive pending review on-hold suspend"`
	CategoryID       string `validate:"omitempty,uuid"`
	Search           string `validate:"max=255"`
}
