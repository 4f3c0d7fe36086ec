// Package token issues and verifies the HS256 JWTs used for API access and for
// one-shot account links (activation, password reset).
package token

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"erp-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess        Type = "access"
	TypeRefresh       Type = "refresh"
	TypeActivation    Type = "activation"
	TypePasswordReset Type = "password_reset"
)

var (
	ErrInvalid   = errors.New("token is invalid or expired")
	ErrWrongType = errors.New("unexpected token type")
)

type Claims struct {
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
	TokenType   Type   `json:"token_type"`
	Fingerprint string `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Subject is the identity encoded in access and refresh tokens.
type Subject struct {
	ID      uuid.UUID
	Email   string
	Role    string
	IsAdmin bool
}

type Pair struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	accountTTL time.Duration
	now        func() time.Time
}

func NewManager(config utils.JWTConfig) *Manager {
	m := &Manager{
		secret:     []byte(config.Secret),
		accessTTL:  time.Duration(config.AccessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(config.RefreshTTLHours) * time.Hour,
		accountTTL: time.Duration(config.AccountTokenTTLHours) * time.Hour,
		now:        time.Now,
	}
	if m.accessTTL <= 0 {
		m.accessTTL = 15 * time.Minute
	}
	if m.refreshTTL <= 0 {
		m.refreshTTL = 7 * 24 * time.Hour
	}
	if m.accountTTL <= 0 {
		m.accountTTL = 72 * time.Hour
	}
	return m
}

func (m *Manager) IssuePair(sub Subject) (*Pair, error) {
	access, accessExp, err := m.IssueAccess(sub)
	if err != nil {
		return nil, err
	}

	refreshExp := m.now().Add(m.refreshTTL)
	refresh, err := m.sign(&Claims{
		TokenType:        TypeRefresh,
		RegisteredClaims: m.registered(sub.ID, refreshExp),
	})
	if err != nil {
		return nil, err
	}

	return &Pair{
		Access:           access,
		AccessExpiresAt:  accessExp,
		Refresh:          refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (m *Manager) IssueAccess(sub Subject) (string, time.Time, error) {
	exp := m.now().Add(m.accessTTL)
	signed, err := m.sign(&Claims{
		Email:            sub.Email,
		Role:             sub.Role,
		IsAdmin:          sub.IsAdmin,
		TokenType:        TypeAccess,
		RegisteredClaims: m.registered(sub.ID, exp),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueAccountToken signs a one-shot token bound to the user's current state.
// Any change to that state (see Fingerprint) invalidates the token.
func (m *Manager) IssueAccountToken(userID uuid.UUID, purpose Type, fingerprint string) (string, error) {
	return m.sign(&Claims{
		TokenType:        purpose,
		Fingerprint:      fingerprint,
		RegisteredClaims: m.registered(userID, m.now().Add(m.accountTTL)),
	})
}

// Parse verifies signature, expiry and token type.
func (m *Manager) Parse(tokenString string, expected Type) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if claims.TokenType != expected {
		return nil, ErrWrongType
	}
	return claims, nil
}

func (m *Manager) registered(userID uuid.UUID, exp time.Time) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (m *Manager) sign(claims *Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", claims.TokenType, err)
	}
	return signed, nil
}

// Fingerprint hashes the given state values into a short hex digest.
func Fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:16])
}

// EncodeUID encodes a user id for use in an account link path segment.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeUID(uid string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uid, "="))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode uid: %w", err)
	}
	return uuid.Parse(string(raw))
}
