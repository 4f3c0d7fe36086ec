package request

// UpdateUserRequest serves both PUT and PATCH. The flag fields are applied
// only when the caller is an admin.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=13"`
	RoleID      *string `json:"role_id,omitempty" validate:"omitempty,uuid"`
	IsFree      *bool   `json:"is_free,omitempty"`

	IsAdmin  *bool `json:"is_admin,omitempty"`
	IsStaff  *bool `json:"is_staff,omitempty"`
	IsActive *bool `json:"is_active,omitempty"`
}

type RoleRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
