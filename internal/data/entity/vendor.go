package entity

import "github.com/google/uuid"

type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusReview   VendorStatus = "review"
	VendorStatusOnHold   VendorStatus = "on-hold"
	VendorStatusSuspend  VendorStatus = "suspend"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusActive, VendorStatusInactive, VendorStatusPending,
		VendorStatusReview, VendorStatusOnHold, VendorStatusSuspend:
		return true
	}
	return false
}

type Vendor struct {
	BaseNoDelete
	Name          string       `db:"name"`
	ContactPerson string       `db:"contact_person"`
	Address       string       `db:"address"`
	Email         string       `db:"email"`
	Status        VendorStatus `db:"status"`
	CategoryID    *uuid.UUID   `db:"category_id"`
	SubCategoryID *uuid.UUID   `db:"subcategory_id"`
}
