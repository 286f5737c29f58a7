package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
)

// CatalogHandler handles category and product CRUD.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories godoc
// GET /api/v1/admin/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, cats)
}

// CreateCategory godoc
// POST /api/v1/admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req model.CategoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cat, err := h.catalog.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

// UpdateCategory godoc
// PUT /api/v1/admin/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

// DeleteCategory godoc
// DELETE /api/v1/admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListProducts godoc
// GET /api/v1/admin/products?category_id=...
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	categoryID := c.Query("category_id")
	if categoryID != "" {
		if _, err := uuid.Parse(categoryID); err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// GetProduct godoc
// GET /api/v1/admin/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// CreateProduct godoc
// POST /api/v1/admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req model.ProductRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, product)
}

// UpdateProduct godoc
// PUT /api/v1/admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.ProductRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// DeleteProduct godoc
// DELETE /api/v1/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.failCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *CatalogHandler) failCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrSlugTaken):
		response.Fail(c, http.StatusConflict, response.ErrSlugExists)
	case errors.Is(err, service.ErrCategoryInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
