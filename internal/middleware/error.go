package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "pocketbudget/internal/errors"
	"pocketbudget/internal/logger"
)

// ErrorHandler renders the last error attached to the context as
// {"error":{"code","message"}}. Errors that are not AppErrors become
// INTERNAL_ERROR. Nothing is written when the handler already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Named("http").With(
			"request_id", c.GetString(RequestIDKey),
			"path", c.Request.URL.Path,
		)
		if sid := c.GetString(SessionIDKey); sid != "" {
			log = log.With("session_id", sid)
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unhandled error", "error", err.Error(), "method", c.Request.Method)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("request failed", "code", appErr.Code, "internal", appErr.Internal.Error())
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
