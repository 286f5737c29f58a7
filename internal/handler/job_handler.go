package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
)

// JobHandler handles job posting CRUD plus the public careers listing.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// ListPublic godoc
// GET /api/v1/jobs
// Active postings only, for the careers page and application form.
func (h *JobHandler) ListPublic(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context(), true)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, jobs)
}

// List godoc
// GET /api/v1/admin/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context(), false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, jobs)
}

// Create godoc
// POST /api/v1/admin/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req model.JobRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, job)
}

// Update godoc
// PUT /api/v1/admin/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.JobRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, job)
}

// Delete godoc
// DELETE /api/v1/admin/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
