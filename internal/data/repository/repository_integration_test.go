package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"erp-backend/internal/data/entity"
	repo "erp-backend/internal/data/repository"
	_ "erp-backend/migrations"
	"erp-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// poolDB adapts a pgxpool.Pool to database.PgxIface.
type poolDB struct{ *pgxpool.Pool }

var _ database.PgxIface = poolDB{}

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	ctx  context.Context
	pgc  *postgres.PostgresContainer
	pool *pgxpool.Pool
	repo *repo.Repository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("erp-test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	sqlDB, err := goose.OpenDBWithDriver("pgx", connStr)
	require.NoError(s.T(), err)
	require.NoError(s.T(), goose.SetDialect("postgres"))
	require.NoError(s.T(), goose.UpContext(s.ctx, sqlDB, "../../../migrations"))
	require.NoError(s.T(), sqlDB.Close())

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err)

	s.repo = repo.NewRepository(poolDB{s.pool}, zap.NewNop())
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	s.pool.Close()
	if err := s.pgc.Terminate(s.ctx); err != nil {
		log.Fatalf("failed to terminate pg container: %s", err)
	}
}

func (s *RepositoryIntegrationTestSuite) TestDeleteRole_KeepsUsers() {
	now := time.Now()
	role := &entity.Role{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, Name: "auditor"}
	require.NoError(s.T(), s.repo.Role.Create(s.ctx, role))

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "auditor@example.com",
		PasswordHash: "hash",
		RoleID:       &role.ID,
	}
	require.NoError(s.T(), s.repo.User.Create(s.ctx, user))

	detached, err := s.repo.Role.Delete(s.ctx, role.ID)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, detached)

	found, err := s.repo.User.FindByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Nil(s.T(), found.RoleID)
}

func (s *RepositoryIntegrationTestSuite) TestCreateSubCategory_UnknownCategory() {
	now := time.Now()
	err := s.repo.SubCategory.Create(s.ctx, &entity.SubCategory{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CategoryID:   uuid.New(),
		Name:         "Orphan",
	})
	assert.ErrorIs(s.T(), err, repo.ErrForeignKey)
}

func (s *RepositoryIntegrationTestSuite) TestDeleteCategory_NullsVendorCategory() {
	now := time.Now()
	category := &entity.Category{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, Name: "Logistics"}
	require.NoError(s.T(), s.repo.Category.Create(s.ctx, category))

	sub := &entity.SubCategory{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, CategoryID: category.ID, Name: "Freight"}
	require.NoError(s.T(), s.repo.SubCategory.Create(s.ctx, sub))

	vendor := &entity.Vendor{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:          "Shipfast",
		Email:         "ops@shipfast.example",
		Status:        entity.VendorStatusPending,
		CategoryID:    &category.ID,
		SubCategoryID: &sub.ID,
	}
	require.NoError(s.T(), s.repo.Vendor.Create(s.ctx, vendor))

	require.NoError(s.T(), s.repo.Category.Delete(s.ctx, category.ID))

	gone, err := s.repo.SubCategory.FindByID(s.ctx, sub.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), gone)

	found, err := s.repo.Vendor.FindByID(s.ctx, vendor.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Nil(s.T(), found.CategoryID)
	assert.Nil(s.T(), found.SubCategoryID)
}

func (s *RepositoryIntegrationTestSuite) TestUserSoftDelete_HidesUserAndFreesEmail() {
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "gone@example.com",
		PasswordHash: "hash",
	}
	require.NoError(s.T(), s.repo.User.Create(s.ctx, user))
	require.NoError(s.T(), s.repo.User.Delete(s.ctx, user.ID))

	found, err := s.repo.User.FindByEmail(s.ctx, "gone@example.com")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), found)

	again := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "gone@example.com",
		PasswordHash: "hash",
	}
	assert.NoError(s.T(), s.repo.User.Create(s.ctx, again))
}

func TestRepositoryIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
