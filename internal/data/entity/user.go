package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Email        string     `db:"email"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	PasswordHash string     `db:"password"`
	RoleID       *uuid.UUID `db:"role_id"`
	PhoneNumber  *string    `db:"phone_number"`
	IsFree       bool       `db:"is_free"`
	OTP          *string    `db:"otp"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`
	RefreshToken *string    `db:"refresh_token"`
	IsAdmin      bool       `db:"is_admin"`
	IsStaff      bool       `db:"is_staff"`
	IsActive     bool       `db:"is_active"`
	IsSuperadmin bool       `db:"is_superadmin"`

	// RoleName is filled by queries joining roles.
	RoleName *string `db:"role_name"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
