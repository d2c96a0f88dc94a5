package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"spendlog/internal/logger"
	"spendlog/internal/uuid"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "requestID"

// RequestLogging returns a Gin middleware that logs each request with a unique
// request ID, method, path, status code, latency, and client IP using Zap.
// An incoming X-Request-ID header is reused when present.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := c.Get(UserIDKey); ok {
			fields = append(fields, "user_id", userID)
		}

		log := logger.Get()
		if c.Writer.Status() >= 500 {
			log.Errorw("request", fields...)
			return
		}
		log.Infow("request", fields...)
	}
}
