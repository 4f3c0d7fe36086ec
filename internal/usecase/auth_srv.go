package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"erp-backend/internal/data/entity"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/request"
	"erp-backend/internal/dto/response"
	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	CreateSuperuser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	IssueTokens(ctx context.Context, req *request.TokenRequest) (*response.TokenPairResponse, error)
	RefreshTokens(ctx context.Context, req *request.RefreshTokenRequest) (*response.AccessTokenResponse, error)
	Activate(ctx context.Context, uid, activationToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
}

type accountService struct {
	users  repository.UserRepository
	config *utils.Config
	tokens *token.Manager
	notify *notifier
	log    *zap.Logger
}

func NewAccountService(
	users repository.UserRepository,
	config *utils.Config,
	tokens *token.Manager,
	notify *notifier,
	log *zap.Logger,
) AccountService {
	return &accountService{
		users:  users,
		config: config,
		tokens: tokens,
		notify: notify,
		log:    log.With(zap.String("service", "account")),
	}
}

func (s *accountService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	user, err := s.createUser(ctx, req, false)
	if err != nil {
		return nil, err
	}

	s.sendActivationEmail(user)
	s.notify.publish(events.SubjectUserRegistered, user.ID, user.Email)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CreateSuperuser creates an active account with every privilege flag set.
func (s *accountService) CreateSuperuser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	user, err := s.createUser(ctx, req, true)
	if err != nil {
		return nil, err
	}

	s.notify.publish(events.SubjectUserRegistered, user.ID, user.Email)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *accountService) createUser(ctx context.Context, req *request.CreateUserRequest, superuser bool) (*entity.User, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Email == "" {
		return nil, fieldError("email", "Users must have an email address")
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create user validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with this email", ErrAlreadyExists)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hashed,
		PhoneNumber:  req.PhoneNumber,
		IsAdmin:      superuser,
		IsStaff:      superuser,
		IsActive:     superuser,
		IsSuperadmin: superuser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, storeError(err, "user with this email")
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("superuser", superuser),
	)
	return user, nil
}

func (s *accountService) IssueTokens(ctx context.Context, req *request.TokenRequest) (*response.TokenPairResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Inactive user requested token", zap.String("user_id", user.ID.String()))
		return nil, ErrInactiveAccount
	}

	pair, err := s.tokens.IssuePair(subjectOf(user))
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	user.RefreshToken = &pair.Refresh
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, storeError(err, "user")
	}

	s.log.Info("Tokens issued", zap.String("user_id", user.ID.String()))
	resp := response.TokenPairToResponse(pair)
	return &resp, nil
}

// RefreshTokens trades the refresh token last issued to a user for a new access token.
func (s *accountService) RefreshTokens(ctx context.Context, req *request.RefreshTokenRequest) (*response.AccessTokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	claims, err := s.tokens.Parse(req.Refresh, token.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToken, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.RefreshToken == nil || !equalSecret(*user.RefreshToken, req.Refresh) {
		s.log.Warn("Refresh token does not match stored token", zap.String("user_id", userID.String()))
		return nil, ErrToken
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	access, exp, err := s.tokens.IssueAccess(subjectOf(user))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &response.AccessTokenResponse{Access: access, ExpiresAt: exp}, nil
}

// Activate verifies an emailed activation link and enables the account.
// The token is bound to the account state it was issued for, so it stops
// working once the account is active or the password changes.
func (s *accountService) Activate(ctx context.Context, uid, activationToken string) error {
	user, err := s.userFromAccountToken(ctx, uid, activationToken, token.TypeActivation)
	if err != nil {
		s.log.Warn("Activation rejected", zap.Error(err), zap.String("uid", uid))
		if errors.Is(err, ErrToken) {
			return ErrActivation
		}
		return err
	}

	user.IsActive = true
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to activate user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return storeError(err, "user")
	}

	s.notify.publish(events.SubjectUserActivated, user.ID, user.Email)
	s.log.Info("User activated", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return fieldError("email", "This field is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user with this email", ErrNotFound)
	}

	uid, resetToken, err := s.accountLink(user, token.TypePasswordReset)
	if err != nil {
		return err
	}

	s.notify.mail(mailer.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"Hi %s,\n\nUse the following values to choose a new password:\n\nuid: %s\ntoken: %s\n\nSubmit them with your new password to %s/user/password-change/\n",
			displayName(user), uid, resetToken, s.baseURL(),
		),
	})
	s.notify.publish(events.SubjectPasswordResetRequested, user.ID, user.Email)

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.userFromAccountToken(ctx, req.UID, req.Token, token.TypePasswordReset)
	if err != nil {
		s.log.Warn("Password reset rejected", zap.Error(err))
		return err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hashed
	user.RefreshToken = nil
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to reset password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return storeError(err, "user")
	}

	s.notify.publish(events.SubjectPasswordChanged, user.ID, user.Email)
	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *accountService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user with this email", ErrNotFound)
	}

	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiry := time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 10 * time.Minute
	}
	expiresAt := time.Now().Add(expiry)

	user.OTP = &code
	user.OTPExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to store OTP", zap.Error(err), zap.String("user_id", user.ID.String()))
		return storeError(err, "user")
	}

	s.notify.mail(mailer.Message{
		To:      user.Email,
		Subject: "Your verification code",
		Body: fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires at %s.\n",
			displayName(user), code, expiresAt.Format(time.RFC1123)),
	})

	s.log.Info("OTP generated", zap.String("user_id", user.ID.String()), zap.Time("expires_at", expiresAt))
	return nil
}

// VerifyOTP activates the account when the code matches and has not expired.
func (s *accountService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.OTP == nil || user.OTPExpiresAt == nil {
		return ErrActivation
	}
	if !equalSecret(*user.OTP, req.OTP) || time.Now().After(*user.OTPExpiresAt) {
		s.log.Warn("Invalid or expired OTP", zap.String("user_id", user.ID.String()))
		return ErrActivation
	}

	wasActive := user.IsActive
	user.IsActive = true
	user.OTP = nil
	user.OTPExpiresAt = nil
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return storeError(err, "user")
	}

	if !wasActive {
		s.notify.publish(events.SubjectUserActivated, user.ID, user.Email)
	}
	s.log.Info("OTP verified", zap.String("user_id", user.ID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *accountService) sendActivationEmail(user *entity.User) {
	uid, activationToken, err := s.accountLink(user, token.TypeActivation)
	if err != nil {
		s.log.Error("Failed to build activation link", zap.Error(err), zap.String("user_id", user.ID.String()))
		return
	}

	s.notify.mail(mailer.Message{
		To:      user.Email,
		Subject: "Activate your account",
		Body: fmt.Sprintf("Hi %s,\n\nPlease click the link below to activate your account:\n\n%s/activate/%s/%s/\n",
			displayName(user), s.baseURL(), uid, activationToken),
	})
}

func (s *accountService) accountLink(user *entity.User, purpose token.Type) (string, string, error) {
	signed, err := s.tokens.IssueAccountToken(user.ID, purpose, accountFingerprint(user))
	if err != nil {
		return "", "", fmt.Errorf("issue %s token: %w", purpose, err)
	}
	return token.EncodeUID(user.ID), signed, nil
}

// userFromAccountToken resolves the user an activation or reset link was
// issued for. Every failure is reported as ErrToken.
func (s *accountService) userFromAccountToken(ctx context.Context, uid, raw string, purpose token.Type) (*entity.User, error) {
	userID, err := token.DecodeUID(uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToken, err)
	}

	claims, err := s.tokens.Parse(raw, purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToken, err)
	}
	if claims.Subject != userID.String() {
		return nil, fmt.Errorf("%w: token was issued for another user", ErrToken)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", ErrToken)
	}
	if !equalSecret(claims.Fingerprint, accountFingerprint(user)) {
		return nil, fmt.Errorf("%w: token already used", ErrToken)
	}
	return user, nil
}

func (s *accountService) baseURL() string {
	return strings.TrimRight(s.config.App.BaseURL, "/")
}

func accountFingerprint(user *entity.User) string {
	return token.Fingerprint(user.ID.String(), user.PasswordHash, strconv.FormatBool(user.IsActive))
}

func subjectOf(user *entity.User) token.Subject {
	sub := token.Subject{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
	if user.RoleName != nil {
		sub.Role = *user.RoleName
	}
	return sub
}

func displayName(user *entity.User) string {
	if name := user.FullName(); name != "" {
		return name
	}
	return user.Email
}

func equalSecret(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
