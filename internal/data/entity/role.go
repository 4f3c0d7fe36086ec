package entity

type Role struct {
	BaseNoDelete
	Name string `db:"name"`
}
