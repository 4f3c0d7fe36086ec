package wire

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp-backend/internal/data/repository"
	"erp-backend/internal/usecase"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routerFixture struct {
	router http.Handler
	mock   pgxmock.PgxPoolIface
	tokens *token.Manager
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	config := &utils.Config{
		App: utils.AppConfig{BaseURL: "http://localhost:8080", CORSOrigins: []string{"http://localhost:5173"}},
		JWT: utils.JWTConfig{Secret: "test-secret", AccessTTLMinutes: 5, RefreshTTLHours: 1, AccountTokenTTLHours: 1},
		OTP: utils.OTPConfig{Length: 6, ExpiryMinutes: 10},
	}
	tokens := token.NewManager(config.JWT)

	app := Wiring(repository.NewRepository(mock, zap.NewNop()), config, usecase.Deps{Tokens: tokens}, zap.NewNop())
	return &routerFixture{router: app.Router, mock: mock, tokens: tokens}
}

func (f *routerFixture) do(t *testing.T, method, path, bearer string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) access(t *testing.T, isAdmin bool) string {
	t.Helper()
	pair, err := f.tokens.IssuePair(token.Subject{ID: uuid.New(), Email: "caller@example.com", IsAdmin: isAdmin})
	require.NoError(t, err)
	return pair.Access
}

func TestOpsEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthGuards(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/user/", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/user/me/", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/user/role/", f.access(t, false), nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/user/"+uuid.NewString()+"/", f.access(t, false), nil).Code)
}

func TestTrailingSlashRoutes(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/vendors/not-a-uuid/", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	now := time.Now()
	f.mock.ExpectQuery(`FROM core_categories`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(uuid.New(), "Procurement", now, now))
	f.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM core_categories`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	rec = f.do(t, http.MethodGet, "/core/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Procurement")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateSubCategory_UnknownCategory(t *testing.T) {
	f := newRouterFixture(t)
	categoryID := uuid.New()

	f.mock.ExpectQuery(`FROM categories WHERE id = \$1`).
		WithArgs(categoryID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	body := []byte(`{"category":"` + categoryID.String() + `","name":"Fasteners"}`)
	rec := f.do(t, http.MethodPost, "/sub-category/", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category"`)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
