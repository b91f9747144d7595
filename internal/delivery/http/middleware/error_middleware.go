package middleware

import (
	"errors"
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("internal server error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
	}
}
