package request

type CoreCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type SubCategoryRequest struct {
	CategoryID string `json:"category" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
}

type SubCategoryUpdateRequest struct {
	CategoryID *string `json:"category,omitempty" validate:"omitempty,uuid"`
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}
