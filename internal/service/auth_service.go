package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionInvalid     = errors.New("session invalid or revoked")
)

// tokenLeeway bounds the clock skew tolerated when validating exp/iat.
const tokenLeeway = 60 * time.Second

// SessionStore is the server-side session adapter the auth flow needs.
// repository.SessionRepository is the production implementation.
type SessionStore interface {
	Create(ctx context.Context, userID, sessionID string, expiresAt time.Time) error
	IsValid(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteAllForUserExcept(ctx context.Context, userID, keep string) error
}

// Claims extends JWT standard claims with the identity fields downstream
// handlers need. Subject is the user id, ID (jti) the session id.
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  model.Role `json:"role"`
}

// AuthService handles credential checks, JWT issuance/verification, and
// session lifecycle.
type AuthService struct {
	cfg      *config.Config
	sessions SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions}
}

// CheckPassword compares a plaintext password against the stored hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if !VerifyPassword(password, hash) {
		return ErrInvalidCredentials
	}
	return nil
}

// CreateSession inserts a server-side session for the user and returns its
// id. Session ids carry 128 bits of entropy (UUIDv4); lifetime comes from
// config and is normally longer than the token expiry — the session is the
// authority on revocation.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(s.cfg.SessionTTL)

	if err := s.sessions.Create(ctx, userID, sessionID, expiresAt); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

// GenerateToken creates a signed JWT binding the user's identity to the
// given session. The token never carries the password hash or any other
// secret material.
func (s *AuthService) GenerateToken(user *model.AdminUser, sessionID string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a JWT, returning the claims. It fails
// with ErrInvalidToken on a bad signature, malformed or missing claims, or
// an exp in the past (beyond the bounded leeway).
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithLeeway(tokenLeeway))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// CheckSession confirms the token's jti still resolves to a live session.
// Storage errors fail closed.
func (s *AuthService) CheckSession(ctx context.Context, sessionID string) error {
	valid, err := s.sessions.IsValid(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if !valid {
		return ErrSessionInvalid
	}
	return nil
}

// DeleteSession revokes one session (logout). Idempotent.
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// RevokeOtherSessions deletes every session of the user except keep.
// Called after a password change so the current login survives.
func (s *AuthService) RevokeOtherSessions(ctx context.Context, userID, keep string) error {
	return s.sessions.DeleteAllForUserExcept(ctx, userID, keep)
}
