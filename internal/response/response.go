package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the envelope every endpoint returns: data on success, a
// structured error otherwise, and metadata either way.
type Response struct {
	Data       interface{} `json:"data"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Metadata   Metadata    `json:"metadata"`
}

// ErrorBody carries a machine-readable code, a human-readable message,
// and optional per-field validation details.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination holds list paging information.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Metadata ties a response to its request for tracing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success sends data with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Data:     data,
		Metadata: metadata(c),
	})
}

// SuccessWithPagination sends data plus paging metadata.
func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	c.JSON(statusCode, Response{
		Data:       data,
		Pagination: pagination,
		Metadata:   metadata(c),
	})
}

// Fail sends an error response identified by code alone.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Metadata: metadata(c),
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, Response{
		Error:    &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
		Metadata: metadata(c),
	})
}

// AbortFail sends an error response and stops the middleware chain. Used
// by the auth and role gates so handlers never run on a rejected request.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Metadata: metadata(c),
	})
}

func metadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		// Middleware not applied (direct handler tests); still tag the response.
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
