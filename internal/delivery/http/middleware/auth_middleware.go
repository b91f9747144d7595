package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an active user and attaches
// it to both the gin context and the request context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.Abort(c, http.StatusUnauthorized, "Access token is required")
			return
		}

		user, err := authUC.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Kind == apperror.KindUnauthorized {
				logAccessDenied(c, security.EventUnauthorizedAccess, appErr.Message)
				response.Abort(c, http.StatusUnauthorized, appErr.Message)
				return
			}
			c.Error(err)
			c.Abort()
			return
		}

		actor := domain.Actor{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
		c.Set(string(domain.KeyUserID), actor.ID)
		c.Set(string(domain.KeyUserEmail), actor.Email)
		c.Set(string(domain.KeyUserName), actor.Name)
		c.Set(string(domain.KeyUserRole), actor.Role)
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := domain.ActorFromContext(c.Request.Context())
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !slices.Contains(roles, actor.Role) {
			logAccessDenied(c, security.EventForbiddenAccess, "role "+actor.Role)
			response.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func logAccessDenied(c *gin.Context, event security.EventType, reason string) {
	subjectType, subject := "ip", c.ClientIP()
	if actor, ok := domain.ActorFromContext(c.Request.Context()); ok {
		subjectType, subject = "user_id", strconv.FormatInt(actor.ID, 10)
	}
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:        event,
		SubjectType:  subjectType,
		SubjectValue: subject,
		IP:           c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		RequestID:    c.GetString(string(domain.KeyRequestID)),
		Details:      map[string]interface{}{"path": c.FullPath(), "reason": reason},
	})
}
