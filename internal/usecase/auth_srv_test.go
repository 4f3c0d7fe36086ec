package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"erp-backend/internal/dto/request"
	"erp-backend/pkg/events"
	"erp-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, f *accountFixture, email, password string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  password,
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestCreateUser_EmptyEmailFails(t *testing.T) {
	f := newAccountFixture(t)

	for _, email := range []string{"", "   "} {
		_, err := f.svc.CreateUser(context.Background(), &request.CreateUserRequest{
			Email:    email,
			Password: "s3cret-pass",
		})
		require.ErrorIs(t, err, ErrValidation, "email %q", email)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	}

	count, _ := f.users.CountAll(context.Background())
	assert.Zero(t, count)
}

func TestCreateUser_StoresHashAndStartsInactive(t *testing.T) {
	f := newAccountFixture(t)

	resp, err := f.svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:    "Ada@Example.COM",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada@example.com", resp.Email)
	assert.False(t, resp.IsActive)

	stored := f.users.stored(uuid.MustParse(resp.ID))
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "s3cret-pass")
	assert.NotContains(t, string(body), stored.PasswordHash)
	assert.NotContains(t, string(body), "password")

	msg := f.mail.last()
	assert.Equal(t, "Ada@example.com", msg.To)
	assert.Contains(t, msg.Body, "https://erp.example.com/activate/"+token.EncodeUID(stored.ID)+"/")
	assert.Equal(t, []string{events.SubjectUserRegistered}, f.events.subjects())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newAccountFixture(t)
	createUser(t, f, "ada@example.com", "s3cret-pass")

	_, err := f.svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:    "ada@EXAMPLE.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateUser_PasswordOverBcryptLimit(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:    "ada@example.com",
		Password: strings.Repeat("p", 73),
	})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Maximum length is 72 bytes", verr.Fields["password"])

	count, _ := f.users.CountAll(context.Background())
	assert.Zero(t, count)
}

func TestCreateSuperuser_SetsAllFlags(t *testing.T) {
	f := newAccountFixture(t)

	resp, err := f.svc.CreateSuperuser(context.Background(), &request.CreateUserRequest{
		Email:    "root@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.True(t, resp.IsStaff)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.IsSuperadmin)
}

func TestActivate(t *testing.T) {
	f := newAccountFixture(t)
	id := createUser(t, f, "ada@example.com", "s3cret-pass")
	user := f.users.stored(id)

	uid, activation, err := f.svc.accountLink(&user, token.TypeActivation)
	require.NoError(t, err)

	t.Run("tampered token never activates", func(t *testing.T) {
		tampered := activation[:len(activation)-2] + flip(activation[len(activation)-2:])
		err := f.svc.Activate(context.Background(), uid, tampered)
		require.ErrorIs(t, err, ErrActivation)
		assert.False(t, f.users.stored(id).IsActive)
	})

	t.Run("token for another user is rejected", func(t *testing.T) {
		other := token.EncodeUID(uuid.New())
		err := f.svc.Activate(context.Background(), other, activation)
		require.ErrorIs(t, err, ErrActivation)
		assert.False(t, f.users.stored(id).IsActive)
	})

	t.Run("reset token cannot activate", func(t *testing.T) {
		_, reset, err := f.svc.accountLink(&user, token.TypePasswordReset)
		require.NoError(t, err)
		require.ErrorIs(t, f.svc.Activate(context.Background(), uid, reset), ErrActivation)
		assert.False(t, f.users.stored(id).IsActive)
	})

	t.Run("valid token activates once", func(t *testing.T) {
		require.NoError(t, f.svc.Activate(context.Background(), uid, activation))
		assert.True(t, f.users.stored(id).IsActive)
		assert.Contains(t, f.events.subjects(), events.SubjectUserActivated)

		assert.ErrorIs(t, f.svc.Activate(context.Background(), uid, activation), ErrActivation)
	})
}

func TestIssueAndRefreshTokens(t *testing.T) {
	f := newAccountFixture(t)
	id := createUser(t, f, "ada@example.com", "s3cret-pass")
	ctx := context.Background()

	_, err := f.svc.IssueTokens(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.ErrorIs(t, err, ErrInactiveAccount)

	user := f.users.stored(id)
	user.IsActive = true
	require.NoError(t, f.users.Update(ctx, &user))

	_, err = f.svc.IssueTokens(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.IssueTokens(ctx, &request.TokenRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	pair, err := f.svc.IssueTokens(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	stored := f.users.stored(id)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.Refresh, *stored.RefreshToken)

	claims, err := f.tokens.Parse(pair.Access, token.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)

	access, err := f.svc.RefreshTokens(ctx, &request.RefreshTokenRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, access.Access)

	_, err = f.svc.RefreshTokens(ctx, &request.RefreshTokenRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, ErrToken)

	second, err := f.svc.IssueTokens(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEqual(t, pair.Refresh, second.Refresh)

	_, err = f.svc.RefreshTokens(ctx, &request.RefreshTokenRequest{Refresh: pair.Refresh})
	assert.ErrorIs(t, err, ErrToken, "superseded refresh token must be rejected")
}

func TestPasswordReset(t *testing.T) {
	f := newAccountFixture(t)
	id := createUser(t, f, "ada@example.com", "s3cret-pass")
	ctx := context.Background()

	require.ErrorIs(t, f.svc.RequestPasswordReset(ctx, "nobody@example.com"), ErrNotFound)
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "ada@example.com"))

	msg := f.mail.last()
	assert.Equal(t, "Reset your password", msg.Subject)
	uid := token.EncodeUID(id)
	assert.Contains(t, msg.Body, "uid: "+uid)

	user := f.users.stored(id)
	_, resetToken, err := f.svc.accountLink(&user, token.TypePasswordReset)
	require.NoError(t, err)
	assert.Contains(t, f.events.subjects(), events.SubjectPasswordResetRequested)

	err = f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{UID: uid, Token: "garbage", Password: "brand-new-pass"})
	require.ErrorIs(t, err, ErrToken)

	err = f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{UID: uid, Token: resetToken, Password: strings.Repeat("p", 73)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	req := &request.ResetPasswordRequest{UID: uid, Token: resetToken, Password: "brand-new-pass"}
	require.NoError(t, f.svc.ResetPassword(ctx, req))

	stored := f.users.stored(id)
	assert.NotEqual(t, user.PasswordHash, stored.PasswordHash)

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, req), ErrToken, "token must not be reusable")
}

func TestOTP(t *testing.T) {
	f := newAccountFixture(t)
	id := createUser(t, f, "ada@example.com", "s3cret-pass")
	ctx := context.Background()

	require.NoError(t, f.svc.SendOTP(ctx, &request.SendOTPRequest{Email: "ada@example.com"}))
	stored := f.users.stored(id)
	require.NotNil(t, stored.OTP)
	assert.Len(t, *stored.OTP, 6)
	assert.Contains(t, f.mail.last().Body, *stored.OTP)

	wrong := "000000"
	if *stored.OTP == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "ada@example.com", OTP: wrong}), ErrActivation)
	assert.False(t, f.users.stored(id).IsActive)

	require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "ada@example.com", OTP: *stored.OTP}))
	activated := f.users.stored(id)
	assert.True(t, activated.IsActive)
	assert.Nil(t, activated.OTP)
}

func TestOTP_Expired(t *testing.T) {
	f := newAccountFixture(t)
	id := createUser(t, f, "ada@example.com", "s3cret-pass")
	ctx := context.Background()

	require.NoError(t, f.svc.SendOTP(ctx, &request.SendOTPRequest{Email: "ada@example.com"}))
	user := f.users.stored(id)
	past := time.Now().Add(-time.Minute)
	user.OTPExpiresAt = &past
	require.NoError(t, f.users.Update(ctx, &user))

	err := f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "ada@example.com", OTP: *user.OTP})
	require.ErrorIs(t, err, ErrActivation)
	assert.False(t, f.users.stored(id).IsActive)
}

// flip changes every character of s so the result always differs.
func flip(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c == 'A' {
			out[i] = 'B'
		} else {
			out[i] = 'A'
		}
	}
	return string(out)
}
