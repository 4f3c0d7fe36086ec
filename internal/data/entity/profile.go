package entity

import "github.com/google/uuid"

type UserProfile struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	ProfilePic *string   `db:"profile_pic"`
	Address    *string   `db:"address"`
}
