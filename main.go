package main

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anxforever/portfolio-api/config"
	"github.com/anxforever/portfolio-api/handlers"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/anxforever/portfolio-api/router"
	"github.com/anxforever/portfolio-api/services"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Rate limit store: Redis when configured, in-memory otherwise. The
	// in-memory store is a single-process approximation; run Redis for
	// multi-instance deployments.
	var redisClient *redis.Client
	var rateLimiter services.RateLimiter
	if cfg.Redis.Enabled {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.Redis.UseTLS {
			host, _, err := net.SplitHostPort(cfg.Redis.Address)
			if err != nil {
				host = cfg.Redis.Address
			}
			redisOptions.TLSConfig = &tls.Config{
				ServerName: host,
				MinVersion: tls.VersionTLS12,
			}
		}
		redisClient = redis.NewClient(redisOptions)
		defer func() { _ = redisClient.Close() }()
		rateLimiter = services.NewRedisRateLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	} else {
		rateLimiter = services.NewMemoryRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}

	var emailService *services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(&cfg.Email)
	}
	contactService := services.NewContactService(emailService)

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		ContactHandler: handlers.NewContactHandler(contactService),
		HealthHandler:  handlers.NewHealthHandler(redisClient),
		RateLimiter:    rateLimiter,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
}
