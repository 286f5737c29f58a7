package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/middleware"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
)

// AdminUserHandler handles the /admin/users endpoints. The rank checks
// live in the service; this layer maps policy errors to status codes.
type AdminUserHandler struct {
	userService *service.AdminUserService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(userService *service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

// List godoc
// GET /api/v1/admin/users
// Returns the users the actor may administer (filtered by allow-list).
func (h *AdminUserHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	users, err := h.userService.List(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// Create godoc
// POST /api/v1/admin/users
func (h *AdminUserHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), claims, &req)
	if err != nil {
		h.failUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Update godoc
// PUT /api/v1/admin/users/:id
func (h *AdminUserHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), claims, id, &req)
	if err != nil {
		h.failUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// Delete godoc
// DELETE /api/v1/admin/users/:id
func (h *AdminUserHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), claims, id); err != nil {
		h.failUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func (h *AdminUserHandler) failUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailExists)
	case errors.Is(err, service.ErrInvalidRole):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
	case errors.Is(err, service.ErrForbiddenRole):
		response.Fail(c, http.StatusForbidden, response.ErrTargetOutranks)
	case errors.Is(err, service.ErrSelfDelete):
		response.Fail(c, http.StatusForbidden, response.ErrCannotDeleteSelf)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
