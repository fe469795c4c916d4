package server

import (
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/auth"
	"github.com/ipqbbqgyy/parking-system/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware logs every request once it has been served.
// Server errors are logged at error level.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []any{
			"method", method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", clientIP,
		}
		if accountID, ok := auth.AccountID(c); ok {
			fields = append(fields, "account_id", accountID)
		}

		if status >= 500 {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}
