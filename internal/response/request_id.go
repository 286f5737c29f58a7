package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// maxInboundRequestIDLen caps client-supplied ids so a hostile header
// cannot bloat logs or responses.
const maxInboundRequestIDLen = 64

// RequestIDMiddleware tags every request with an id, honoring a
// reasonable inbound X-Request-ID so ids correlate across the CDN and
// this service, and echoes it back on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" || len(reqID) > maxInboundRequestIDLen {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
