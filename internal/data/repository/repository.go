package repository

import (
	"erp-backend/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Role         RoleRepository
	Profile      ProfileRepository
	CoreCategory CoreCategoryRepository
	Category     CategoryRepository
	SubCategory  SubCategoryRepository
	Vendor       VendorRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Role:         NewRoleRepository(db, log),
		Profile:      NewProfileRepository(db, log),
		CoreCategory: NewCoreCategoryRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		SubCategory:  NewSubCategoryRepository(db, log),
		Vendor:       NewVendorRepository(db, log),
	}
}
