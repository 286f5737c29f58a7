package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
)

// SubmissionHandler handles the public contact/application forms and the
// admin submission inbox.
type SubmissionHandler struct {
	cfg         *config.Config
	submissions *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(cfg *config.Config, submissions *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{cfg: cfg, submissions: submissions}
}

// Contact godoc
// POST /api/v1/contact
// Public contact form. Writes a submission row and notifies opted-in
// admins; notification failure never fails the request.
func (h *SubmissionHandler) Contact(c *gin.Context) {
	var req model.ContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.submissions.SubmitContact(c.Request.Context(), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Thank you for your message. We will be in touch soon!",
	})
}

// Apply godoc
// POST /api/v1/apply
// Public job application form (multipart). An attached resume must be a
// PDF under the size cap and is stored in the object store.
func (h *SubmissionHandler) Apply(c *gin.Context) {
	req := model.ContactRequest{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if phone := strings.TrimSpace(c.PostForm("phone")); phone != "" {
		req.Phone = &phone
	}

	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	jobID := c.PostForm("job_id")
	if jobID != "" {
		if _, err := uuid.Parse(jobID); err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
	}

	var resume *service.ResumeUpload
	file, header, err := c.Request.FormFile("resume")
	if err == nil {
		defer file.Close()

		if header.Size > h.cfg.MaxUploadBytes {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return
		}
		contentType := header.Header.Get("Content-Type")
		if contentType != "application/pdf" {
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
			return
		}

		resume = &service.ResumeUpload{
			FileName:    header.Filename,
			ContentType: contentType,
			Body:        file,
		}
	}

	_, err = h.submissions.SubmitApplication(c.Request.Context(), &req, jobID, resume)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Thank you for your application. We will review it shortly.",
	})
}

// List godoc
// GET /api/v1/admin/submissions?type=...&status=...
func (h *SubmissionHandler) List(c *gin.Context) {
	subs, err := h.submissions.List(c.Request.Context(),
		model.SubmissionType(c.Query("type")),
		model.SubmissionStatus(c.Query("status")),
	)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

// Get godoc
// GET /api/v1/admin/submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.submissions.Get(c.Request.Context(), id)
	if err != nil {
		h.failSubmissionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Update godoc
// PUT /api/v1/admin/submissions/:id
// Triage only: status and notes.
func (h *SubmissionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.submissions.UpdateTriage(c.Request.Context(), id, &req)
	if err != nil {
		h.failSubmissionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Delete godoc
// DELETE /api/v1/admin/submissions/:id
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.submissions.Delete(c.Request.Context(), id); err != nil {
		h.failSubmissionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *SubmissionHandler) failSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
