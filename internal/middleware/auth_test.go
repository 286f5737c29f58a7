package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memSessions is a minimal in-memory service.SessionStore.
type memSessions struct {
	valid map[string]bool
	err   error
}

func (m *memSessions) Create(_ context.Context, _, sessionID string, _ time.Time) error {
	m.valid[sessionID] = true
	return nil
}

func (m *memSessions) IsValid(_ context.Context, sessionID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.valid[sessionID], nil
}

func (m *memSessions) Delete(_ context.Context, sessionID string) error {
	delete(m.valid, sessionID)
	return nil
}

func (m *memSessions) DeleteAllForUser(_ context.Context, _ string) error { return nil }

func (m *memSessions) DeleteAllForUserExcept(_ context.Context, _, _ string) error { return nil }

func testAuthService(store *memSessions) *service.AuthService {
	cfg := &config.Config{
		JWTSecret:  "middleware-test-secret",
		JWTExpiry:  time.Hour,
		SessionTTL: 24 * time.Hour,
	}
	return service.NewAuthService(cfg, store)
}

func issueToken(t *testing.T, svc *service.AuthService, role model.Role) string {
	t.Helper()
	user := &model.AdminUser{
		ID:    "aa8f7c9e-6f3d-4f5b-9e2a-0c1d2e3f4a5b",
		Email: "t@example.com",
		Name:  "Test",
		Role:  role,
	}
	sessionID, err := svc.CreateSession(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	token, err := svc.GenerateToken(user, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func protectedRouter(svc *service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(svc)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"sub": claims.Subject, "role": claims.Role})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r *gin.Engine, header, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertUnauthenticated(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Error == nil || body.Error.Code != response.ErrUnauthenticated {
		t.Errorf("error = %+v, want code %s", body.Error, response.ErrUnauthenticated)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	r := protectedRouter(testAuthService(store))

	assertUnauthenticated(t, doRequest(r, "", ""))
	assertUnauthenticated(t, doRequest(r, "Basic dXNlcjpwYXNz", ""))
	assertUnauthenticated(t, doRequest(r, "Bearer", ""))
}

func TestRequireAuthBadToken(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	r := protectedRouter(testAuthService(store))

	assertUnauthenticated(t, doRequest(r, "Bearer not-a-jwt", ""))
	assertUnauthenticated(t, doRequest(r, "", "garbage-cookie"))
}

func TestRequireAuthValidToken(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	svc := testAuthService(store)
	token := issueToken(t, svc, model.RoleAdmin)
	r := protectedRouter(svc)

	// Authorization header.
	if w := doRequest(r, "Bearer "+token, ""); w.Code != http.StatusOK {
		t.Errorf("header auth: status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	// Session cookie.
	if w := doRequest(r, "", token); w.Code != http.StatusOK {
		t.Errorf("cookie auth: status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAuthRevokedSession(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	svc := testAuthService(store)
	token := issueToken(t, svc, model.RoleAdmin)
	r := protectedRouter(svc)

	// Revoke every session; the still-unexpired token must be rejected.
	store.valid = map[string]bool{}
	assertUnauthenticated(t, doRequest(r, "Bearer "+token, ""))
}

func TestRequireAuthSessionStoreError(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	svc := testAuthService(store)
	token := issueToken(t, svc, model.RoleAdmin)
	r := protectedRouter(svc)

	store.err = context.DeadlineExceeded
	assertUnauthenticated(t, doRequest(r, "Bearer "+token, ""))
}

func TestRequireContentWriterViewer(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	svc := testAuthService(store)
	r := protectedRouter(svc, RequireContentWriter())

	viewerToken := issueToken(t, svc, model.RoleViewer)
	w := doRequest(r, "Bearer "+viewerToken, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("viewer write: status = %d, want 403", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error == nil || body.Error.Code != response.ErrRoleTooLow {
		t.Errorf("error = %+v, want code %s", body.Error, response.ErrRoleTooLow)
	}

	adminToken := issueToken(t, svc, model.RoleAdmin)
	if w := doRequest(r, "Bearer "+adminToken, ""); w.Code != http.StatusOK {
		t.Errorf("admin write: status = %d, want 200", w.Code)
	}
}

func TestRequireUserManagerViewer(t *testing.T) {
	store := &memSessions{valid: map[string]bool{}}
	svc := testAuthService(store)
	r := protectedRouter(svc, RequireUserManager())

	viewerToken := issueToken(t, svc, model.RoleViewer)
	if w := doRequest(r, "Bearer "+viewerToken, ""); w.Code != http.StatusForbidden {
		t.Errorf("viewer user mgmt: status = %d, want 403", w.Code)
	}

	agencyToken := issueToken(t, svc, model.RoleAgency)
	if w := doRequest(r, "Bearer "+agencyToken, ""); w.Code != http.StatusOK {
		t.Errorf("agency user mgmt: status = %d, want 200", w.Code)
	}
}

func TestExtractTokenPrefersCookie(t *testing.T) {
	r := gin.New()
	var got string
	r.GET("/t", func(c *gin.Context) {
		got = ExtractToken(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got != "cookie-token" {
		t.Errorf("ExtractToken = %q, want cookie-token", got)
	}
}
