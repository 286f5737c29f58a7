package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
)

// pathID returns the :id route parameter when it is a well-formed UUID.
// Rejecting malformed ids here keeps garbage out of the uuid-typed SQL
// parameters below.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id, true
}
