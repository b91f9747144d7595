package response

import (
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response standardizes the API JSON envelope
type Response struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// List sends items under key together with their pagination block.
func List(c *gin.Context, key string, items interface{}, pagination domain.Pagination) {
	Success(c, 200, "", gin.H{key: items, "pagination": pagination})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, errs []string) {
	c.JSON(code, Response{
		Status:    StatusError,
		Message:   message,
		Errors:    errs,
		RequestID: requestID(c),
	})
}

// Abort writes an error response and stops the handler chain.
func Abort(c *gin.Context, code int, message string) {
	Error(c, code, message, nil)
	c.Abort()
}
