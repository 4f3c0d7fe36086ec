package usecase

import (
	"erp-backend/internal/data/repository"
	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"
	"erp-backend/pkg/storage"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the outbound adapters shared by services.
type Deps struct {
	Tokens  *token.Manager
	Mailer  mailer.Mailer
	Events  events.Publisher
	Storage storage.Storage
}

type Service struct {
	Account      AccountService
	User         UserService
	Role         RoleService
	Profile      ProfileService
	CoreCategory CoreCategoryService
	Category     CategoryService
	SubCategory  SubCategoryService
	Vendor       VendorService

	notify *notifier
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	n := newNotifier(deps.Mailer, deps.Events, log)

	return &Service{
		Account:      NewAccountService(repo.User, config, deps.Tokens, n, log),
		User:         NewUserService(repo, n, log),
		Role:         NewRoleService(repo.Role, log),
		Profile:      NewProfileService(repo, deps.Storage, log),
		CoreCategory: NewCoreCategoryService(repo.CoreCategory, log),
		Category:     NewCategoryService(repo.Category, log),
		SubCategory:  NewSubCategoryService(repo, log),
		Vendor:       NewVendorService(repo, log),
		notify:       n,
	}
}

// Wait blocks until queued account mails and events have been delivered.
// Commands that exit right after a service call must call it first.
func (s *Service) Wait() {
	if s.notify != nil {
		s.notify.wait()
	}
}
