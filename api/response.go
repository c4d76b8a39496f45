package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Unified response structure for all API endpoints: success payloads are
// wrapped in {"data": ...}, errors in {"error": {"code", "message"}}.

// ErrorCode defines standard error codes for programmatic handling
type ErrorCode string

const (
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"         // 400 - Malformed request
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"           // 404 - Resource not found
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"      // 500 - Unexpected error
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE" // 503 - Dependency down or unconfigured
)

// ErrorResponse is the standard error response structure
type ErrorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

// DataResponse wraps a single resource or object response
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ListResponse wraps a collection of resources
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

// RespondData sends a successful response with a single data object
func RespondData[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, DataResponse[T]{Data: data})
}

// RespondAccepted sends a 202 Accepted response for async operations
func RespondAccepted[T any](c *gin.Context, data T) {
	c.JSON(http.StatusAccepted, DataResponse[T]{Data: data})
}

// RespondList sends a successful response with a list of items
func RespondList[T any](c *gin.Context, data []T) {
	// Ensure empty array instead of null
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{Data: data})
}

// respondError is the internal helper for error responses
func respondError(c *gin.Context, status int, code ErrorCode, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(status, resp)
}

// RespondBadRequest sends a 400 Bad Request error
func RespondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// RespondNotFound sends a 404 Not Found error
func RespondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// RespondInternalError sends a 500 Internal Server Error
func RespondInternalError(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, ErrCodeInternal, message)
}

// RespondServiceUnavailable sends a 503 Service Unavailable error
func RespondServiceUnavailable(c *gin.Context, message string) {
	respondError(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}
