package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
)

// RequireContentWriter gates content mutations (products, categories,
// jobs, submissions). Every role except viewer passes. Runs after
// RequireAuth, so a 403 here means the identity is valid but the action
// is disallowed.
func RequireContentWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		if !claims.Role.CanModifyContent() {
			response.AbortFail(c, http.StatusForbidden, response.ErrRoleTooLow)
			return
		}

		c.Next()
	}
}

// RequireUserManager gates the user-management endpoints. The per-target
// allow-list checks happen in the service; this guard only rejects roles
// with no user-management access at all.
func RequireUserManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		if !claims.Role.CanManageUsers() {
			response.AbortFail(c, http.StatusForbidden, response.ErrRoleTooLow)
			return
		}

		c.Next()
	}
}
