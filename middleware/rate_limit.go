package middleware

import (
	"strconv"
	"strings"

	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/anxforever/portfolio-api/services"
	"github.com/gin-gonic/gin"
)

// RateLimit enforces the per-IP submission quota. It calls the limiter
// exactly once per request (the limiter counts the call), sets
// X-RateLimit-Remaining on every response, and Retry-After on rejection.
// Store errors fail open so the contact form stays reachable when the
// backing store is down.
func RateLimit(limiter services.RateLimiter, maxRequests int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := resolveClientIP(c)
		c.Set(ClientIPKey, ip)

		res, err := limiter.Allow(c.Request.Context(), "contact:"+ip)
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed",
				"error", err, "client_ip", ip)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			_ = c.Error(apperrors.RateLimitExceeded(res.RetryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveClientIP derives the rate-limit identity for a request: first hop
// of X-Forwarded-For, then X-Real-IP, then the connection address, then a
// shared "unknown" sentinel. No authentication is implied; this is only a
// bucketing key.
func resolveClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}
