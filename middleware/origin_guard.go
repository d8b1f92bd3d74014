package middleware

import (
	"net/url"
	"strings"

	"github.com/anxforever/portfolio-api/config"
	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/gin-gonic/gin"
)

// OriginGuard rejects cross-site traffic before any content handling. The
// Origin header is checked against the derived allow-list, falling back to
// Referer when Origin is absent. This is coarse bot/CSRF noise reduction,
// not authentication: any client can forge either header.
//
// Requests carrying neither header (curl and friends) are tolerated outside
// production only, so local testing works without faking browser headers.
func OriginGuard(cfg *config.ServerConfig) gin.HandlerFunc {
	allowed := cfg.AllowedOrigins()
	production := cfg.Environment == config.EnvProduction

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if !originAllowed(origin, allowed) {
				_ = c.Error(apperrors.OriginNotAllowed())
				c.Abort()
				return
			}
			c.Next()
			return
		}

		// No Origin header.
		if !production {
			c.Next()
			return
		}
		if refererAllowed(c.GetHeader("Referer"), allowed) {
			c.Next()
			return
		}

		_ = c.Error(apperrors.OriginNotAllowed())
		c.Abort()
	}
}

func originAllowed(origin string, allowed []string) bool {
	origin = strings.TrimSuffix(origin, "/")
	for _, a := range allowed {
		if strings.EqualFold(origin, a) {
			return true
		}
	}
	return false
}

// refererAllowed reduces a full referer URL to its origin and checks that
// against the allow-list.
func refererAllowed(referer string, allowed []string) bool {
	if referer == "" {
		return false
	}
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return originAllowed(u.Scheme+"://"+u.Host, allowed)
}
