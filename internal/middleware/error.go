package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/logger"
)

// ErrorTemplate is the template rendered for errors no handler displayed.
const ErrorTemplate = "error.html"

// ErrorHandler returns a Gin middleware that renders an error page for errors
// attached to the Gin context when the handler wrote nothing itself.
// AppErrors show their own message and status; anything else is logged and
// shown as a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			RenderError(c, appErr.StatusCode, appErr.Message)
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		RenderError(c, apperrors.ErrInternalServer.StatusCode, apperrors.ErrInternalServer.Message)
	}
}

// RenderError writes the error page with the given status and message.
func RenderError(c *gin.Context, status int, message string) {
	c.HTML(status, ErrorTemplate, gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}
