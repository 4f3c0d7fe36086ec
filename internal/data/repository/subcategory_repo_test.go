package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	repo "erp-backend/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubCategoryRepository_FindAll_ByCategory(t *testing.T) {
	mock := newMock(t)
	r := repo.NewSubCategoryRepository(mock, zap.NewNop())

	categoryID := uuid.New()
	now := time.Now()
	rows := mock.NewRows([]string{"id", "category_id", "category_name", "name", "created_at", "updated_at"}).
		AddRow(uuid.New(), categoryID, "Hardware", "Fasteners", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.category_id = $1 ORDER BY c.name, s.name LIMIT $2 OFFSET $3`)).
		WithArgs(categoryID, 10, 0).
		WillReturnRows(rows)

	subs, err := r.FindAll(context.Background(), 10, 0, &categoryID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "Hardware", subs[0].CategoryName)
	require.Equal(t, "Fasteners", subs[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
