package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/storage"
)

// FileHandler serves blobs out of the object store and accepts datasheet
// uploads from the admin. Datasheets are public and cached hard; resumes
// are private and never cached.
type FileHandler struct {
	cfg   *config.Config
	store *storage.Client
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(cfg *config.Config, store *storage.Client) *FileHandler {
	return &FileHandler{cfg: cfg, store: store}
}

// ServeDatasheet godoc
// GET /api/v1/files/datasheets/*path
// Public. Datasheet keys are immutable (uuid-prefixed), so a year-long
// cache is safe.
func (h *FileHandler) ServeDatasheet(c *gin.Context) {
	key, ok := cleanKey("datasheets", c.Param("path"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	h.serve(c, key)
}

// ServeResume godoc
// GET /api/v1/files/resumes/*path
// Authenticated. Resume blobs belong to applicants, so responses must
// never land in a shared cache.
func (h *FileHandler) ServeResume(c *gin.Context) {
	key, ok := cleanKey("resumes", c.Param("path"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	c.Header("Cache-Control", "private, no-store")
	h.serve(c, key)
}

// Upload godoc
// POST /api/v1/admin/upload
// Accepts a datasheet PDF and returns the public URL for it.
func (h *FileHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
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

	key := fmt.Sprintf("datasheets/%s-%s", uuid.New().String(), path.Base(header.Filename))
	if err := h.store.Put(c.Request.Context(), key, contentType, "inline", file); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"key": key,
		"url": strings.TrimRight(h.cfg.PublicFileBase, "/") + "/" + key,
	})
}

func (h *FileHandler) serve(c *gin.Context, key string) {
	obj, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer obj.Body.Close()

	c.Header("Content-Disposition", obj.ContentDisposition)
	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, nil)
}

// cleanKey joins a store prefix with a wildcard path parameter, rejecting
// anything that escapes the prefix.
func cleanKey(prefix, p string) (string, bool) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", false
	}
	key := path.Join(prefix, path.Clean("/"+p))
	if !strings.HasPrefix(key, prefix+"/") {
		return "", false
	}
	return key, true
}
