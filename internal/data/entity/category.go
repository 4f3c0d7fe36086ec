package entity

import "github.com/google/uuid"

type CoreCategory struct {
	BaseNoDelete
	Name string `db:"name"`
}

type Category struct {
	BaseNoDelete
	Name string `db:"name"`
}

type SubCategory struct {
	BaseNoDelete
	CategoryID   uuid.UUID `db:"category_id"`
	Name         string    `db:"name"`
	CategoryName string    `db:"category_name"`
}
