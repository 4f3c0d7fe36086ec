package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"erp-backend/pkg/middleware"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager() *token.Manager {
	return token.NewManager(utils.JWTConfig{Secret: "test-secret", AccessTTLMinutes: 5, RefreshTTLHours: 1, AccountTokenTTLHours: 1})
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id.String()))
	})
}

func TestAuthJWT(t *testing.T) {
	tokens := newManager()
	userID := uuid.New()
	pair, err := tokens.IssuePair(token.Subject{ID: userID, Email: "a@example.com"})
	require.NoError(t, err)

	handler := middleware.AuthJWT(tokens, zap.NewNop())(echoUser(t))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + pair.Access, want: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + pair.Refresh, want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
		{name: "valid access token", header: "Bearer " + pair.Access, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	tokens := newManager()
	chain := func() http.Handler {
		return middleware.AuthJWT(tokens, zap.NewNop())(middleware.Admin(zap.NewNop())(echoUser(t)))
	}

	staff, err := tokens.IssuePair(token.Subject{ID: uuid.New(), Email: "staff@example.com"})
	require.NoError(t, err)
	admin, err := tokens.IssuePair(token.Subject{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+staff.Access)
	rec := httptest.NewRecorder()
	chain().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+admin.Access)
	rec = httptest.NewRecorder()
	chain().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover(t *testing.T) {
	handler := middleware.Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}
