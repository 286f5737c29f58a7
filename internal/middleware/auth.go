package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for verified token claims.
	ContextKeyClaims = "claims"

	// CookieName carries the bearer token for browser sessions.
	CookieName = "admin_session"
)

// RequireAuth is the per-request auth gateway: extract token, verify
// signature and expiry, confirm the session has not been revoked, then
// attach the verified identity to the context. Every failure mode maps to
// the same generic 401 — the cause is never disclosed to the client.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ExtractToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		// The session row is the authority on revocation: logout elsewhere
		// or a forced revocation rejects here even though the token itself
		// is still unexpired. Storage errors fail closed.
		if err := authService.CheckSession(c.Request.Context(), claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the verified claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// ExtractToken pulls the bearer token from the session cookie, falling
// back to the Authorization header for non-browser clients.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return ""
}
