package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/middleware"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
)

// AuthHandler handles login, logout, profile, and password change.
type AuthHandler struct {
	cfg         *config.Config
	authService *service.AuthService
	userService *service.AdminUserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, authService *service.AuthService, userService *service.AdminUserService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authService: authService, userService: userService}
}

func publicUser(u *model.AdminUser) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password, creates a server-side session, and sets the
// HTTP-only session cookie. Failures are a uniform generic 401 that never
// reveals which field was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.CheckPassword(user.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	sessionID, err := h.authService.CreateSession(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateToken(user, sessionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Best-effort; a failed stamp must not block the login.
	_ = h.userService.RecordLogin(c.Request.Context(), user.ID)

	h.setAuthCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{"user": publicUser(user)})
}

// Logout godoc
// GET|POST /api/v1/auth/logout
// Deletes the server-side session for the token's jti and clears the
// cookie. An invalid or missing token still clears the cookie and
// succeeds — logout is always safe to call.
func (h *AuthHandler) Logout(c *gin.Context) {
	if tokenStr := middleware.ExtractToken(c); tokenStr != "" {
		if claims, err := h.authService.ValidateToken(tokenStr); err == nil {
			_ = h.authService.DeleteSession(c.Request.Context(), claims.ID)
		}
	}

	h.setAuthCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the hydrated profile of the authenticated admin, including
// notification preferences the token claims do not carry.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		// Account deleted after token issuance: identity no longer exists.
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword godoc
// POST /api/v1/auth/change-password
// Self-service password change; revokes every other session of the user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), claims, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordIncorrect):
			response.Fail(c, http.StatusBadRequest, response.ErrPasswordIncorrect)
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
}
