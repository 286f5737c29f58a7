package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

// fakeSessionStore is an in-memory SessionStore for unit tests.
type fakeSessionStore struct {
	sessions map[string]fakeSession // session id -> session
	err      error                  // forced storage error
}

type fakeSession struct {
	userID    string
	expiresAt time.Time
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]fakeSession{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID, sessionID string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.sessions[sessionID] = fakeSession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeSessionStore) IsValid(_ context.Context, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	s, ok := f.sessions[sessionID]
	return ok && s.expiresAt.After(time.Now()), nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionStore) DeleteAllForUser(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	for id, s := range f.sessions {
		if s.userID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionStore) DeleteAllForUserExcept(_ context.Context, userID, keep string) error {
	if f.err != nil {
		return f.err
	}
	for id, s := range f.sessions {
		if s.userID == userID && id != keep {
			delete(f.sessions, id)
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "unit-test-secret",
		JWTExpiry:  time.Hour,
		SessionTTL: 24 * time.Hour,
	}
}

func testUser() *model.AdminUser {
	return &model.AdminUser{
		ID:    "7d0b0df6-3b55-4f24-b1a3-2f6f4bdc8a01",
		Email: "ops@example.com",
		Name:  "Ops Admin",
		Role:  model.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := NewAuthService(testConfig(), store)
	user := testUser()

	sessionID, err := svc.CreateSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	token, err := svc.GenerateToken(user, sessionID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("sub = %s, want %s", claims.Subject, user.ID)
	}
	if claims.ID != sessionID {
		t.Errorf("jti = %s, want %s", claims.ID, sessionID)
	}
	if claims.Email != user.Email || claims.Name != user.Name || claims.Role != user.Role {
		t.Errorf("identity claims = %s/%s/%s", claims.Email, claims.Name, claims.Role)
	}

	if err := svc.CheckSession(ctx, claims.ID); err != nil {
		t.Errorf("CheckSession on live session: %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeSessionStore())
	user := testUser()

	token, err := svc.GenerateToken(user, "session-1")
	if err != nil {
		t.Fatal(err)
	}

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-different-secret"
	other := NewAuthService(otherCfg, newFakeSessionStore())

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeSessionStore())

	for _, tok := range []string{"", "not-a-jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestValidateTokenTampered(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeSessionStore())

	token, err := svc.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatal(err)
	}

	// Corrupting any single byte must break verification, whether it lands
	// in the header, the claims, or the signature.
	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		mutated[i] ^= 0x80
		if _, err := svc.ValidateToken(string(mutated)); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("byte %d corrupted: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -2 * tokenLeeway // expired beyond the leeway window
	svc := NewAuthService(cfg, newFakeSessionStore())

	token, err := svc.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatal(err)
	}

	fresh := NewAuthService(testConfig(), newFakeSessionStore())
	if _, err := fresh.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateTokenExpiredWithinLeeway(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -tokenLeeway / 2 // just expired, inside the leeway
	svc := NewAuthService(cfg, newFakeSessionStore())

	token, err := svc.GenerateToken(testUser(), "session-1")
	if err != nil {
		t.Fatal(err)
	}

	fresh := NewAuthService(testConfig(), newFakeSessionStore())
	if _, err := fresh.ValidateToken(token); err != nil {
		t.Errorf("token inside leeway window rejected: %v", err)
	}
}

func TestValidateTokenMissingClaims(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, newFakeSessionStore())
	now := time.Now()

	cases := map[string]Claims{
		"no subject": {
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "session-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Role: model.RoleAdmin,
		},
		"no jti": {
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Role: model.RoleAdmin,
		},
		"unknown role": {
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "session-1",
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Role: model.Role("root"),
		},
	}

	for name, claims := range cases {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestValidateTokenRejectsNoneAlg(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, newFakeSessionStore())
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "session-1",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: model.RoleAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestCheckSessionRevoked(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := NewAuthService(testConfig(), store)

	sessionID, err := svc.CreateSession(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSession(ctx, sessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := svc.CheckSession(ctx, sessionID); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid after revocation, got %v", err)
	}

	// Revoking twice stays idempotent.
	if err := svc.DeleteSession(ctx, sessionID); err != nil {
		t.Errorf("second DeleteSession: %v", err)
	}
}

func TestCheckSessionExpired(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	store.sessions["expired"] = fakeSession{userID: "user-1", expiresAt: time.Now().Add(-time.Minute)}
	svc := NewAuthService(testConfig(), store)

	if err := svc.CheckSession(ctx, "expired"); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid for expired session, got %v", err)
	}
}

func TestCheckSessionFailsClosed(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	store.sessions["live"] = fakeSession{userID: "user-1", expiresAt: time.Now().Add(time.Hour)}
	store.err = errors.New("connection refused")
	svc := NewAuthService(testConfig(), store)

	if err := svc.CheckSession(ctx, "live"); err == nil {
		t.Error("storage error must fail closed")
	}
}

func TestRevokeOtherSessions(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := NewAuthService(testConfig(), store)

	keep, err := svc.CreateSession(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	other, err := svc.CreateSession(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := svc.CreateSession(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.RevokeOtherSessions(ctx, "user-1", keep); err != nil {
		t.Fatalf("RevokeOtherSessions: %v", err)
	}

	if err := svc.CheckSession(ctx, keep); err != nil {
		t.Errorf("kept session revoked: %v", err)
	}
	if err := svc.CheckSession(ctx, other); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("other session survived: %v", err)
	}
	if err := svc.CheckSession(ctx, foreign); err != nil {
		t.Errorf("unrelated user's session revoked: %v", err)
	}
}
