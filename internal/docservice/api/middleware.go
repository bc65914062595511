package api

import (
	"net/http"

	"docuhub/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
)

// orgIDKey is the gin context key carrying the calling organization.
const orgIDKey = "organizationID"

// OrgMiddleware requires the X-Organization-ID header on every request
// and stores it in the context. Every query downstream is scoped by
// it; there is no cross-organization read path.
func OrgMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := c.GetHeader("X-Organization-ID")
		if orgID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Organization-ID header"})
			c.Abort()
			return
		}
		c.Set(orgIDKey, orgID)
		c.Next()
	}
}

// orgID reads the organization set by OrgMiddleware.
func orgID(c *gin.Context) string {
	return c.GetString(orgIDKey)
}

// RateLimitMiddleware rejects requests above the configured rate with
// 429.
func RateLimitMiddleware(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
