package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg/response"
	"go.uber.org/zap"
)

// AccessLog logs one line per request once the response is written.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		logger.Info("response",
			response.TraceField(c),
			zap.String("method", c.Request.Method),
			zap.String("matched_path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.Int("content_length", c.Writer.Size()),
		)
	}
}
