package response

import (
	"time"

	"erp-backend/internal/data/entity"
)

// UserResponse is the only shape a user leaves the API in. It carries no
// password hash, OTP or refresh token.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	RoleID       *string   `json:"role_id"`
	Role         *string   `json:"role"`
	PhoneNumber  *string   `json:"phone_number"`
	IsFree       bool      `json:"is_free"`
	IsAdmin      bool      `json:"is_admin"`
	IsStaff      bool      `json:"is_staff"`
	IsActive     bool      `json:"is_active"`
	IsSuperadmin bool      `json:"is_superadmin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RoleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	ProfilePic *string   `json:"profile_pic"`
	Address    *string   `json:"address"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.RoleName,
		PhoneNumber:  user.PhoneNumber,
		IsFree:       user.IsFree,
		IsAdmin:      user.IsAdmin,
		IsStaff:      user.IsStaff,
		IsActive:     user.IsActive,
		IsSuperadmin: user.IsSuperadmin,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.RoleID != nil {
		id := user.RoleID.String()
		resp.RoleID = &id
	}
	return resp
}

func RoleToResponse(role *entity.Role) RoleResponse {
	return RoleResponse{
		ID:        role.ID.String(),
		Name:      role.Name,
		CreatedAt: role.CreatedAt,
		UpdatedAt: role.UpdatedAt,
	}
}

func ProfileToResponse(profile *entity.UserProfile, email string) ProfileResponse {
	return ProfileResponse{
		ID:         profile.ID.String(),
		UserID:     profile.UserID.String(),
		Email:      email,
		ProfilePic: profile.ProfilePic,
		Address:    profile.Address,
		UpdatedAt:  profile.UpdatedAt,
	}
}
