package router

import (
	"github.com/anxforever/portfolio-api/config"
	"github.com/anxforever/portfolio-api/handlers"
	"github.com/anxforever/portfolio-api/middleware"
	"github.com/anxforever/portfolio-api/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	ContactHandler *handlers.ContactHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    services.RateLimiter
	Logger         *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeaders(&deps.Config.Server))
	r.Use(middleware.CORS(&deps.Config.Server))

	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		deps.Logger.Warnw("Failed to set trusted proxies", "error", err)
	}

	// Health and metrics routes
	r.GET("/health", deps.HealthHandler.Liveness)
	r.GET("/health/readiness", deps.HealthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Contact submission pipeline: origin guard, then rate limit, then the
	// handler. Order matters — an origin rejection must not touch the
	// rate-limit counter.
	api := r.Group("/api")
	{
		contact := api.Group("/contact")
		contact.POST("",
			middleware.OriginGuard(&deps.Config.Server),
			middleware.RateLimit(deps.RateLimiter, deps.Config.RateLimit.MaxRequests),
			deps.ContactHandler.SubmitContact,
		)
		contact.GET("", deps.ContactHandler.MethodNotAllowed)
	}

	return r
}
