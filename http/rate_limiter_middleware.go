package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware rejects clients that exceed the limiter, keyed by
// client IP.
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
