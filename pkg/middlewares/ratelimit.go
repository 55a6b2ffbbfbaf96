package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg"
)

// RateLimit rejects requests over the limiter's budget with 429 and the
// error envelope.
func RateLimit(limiter *pkg.DistributedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": pkg.ErrRateLimitExceeded.Error()})
			return
		}
		c.Next()
	}
}
