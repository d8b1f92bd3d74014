// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anxforever/portfolio-api/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port        string      `mapstructure:"PORT" yaml:"port"`
	// SiteURL is the deployment's public base URL. The origin allow-list for
	// the contact endpoint is derived from it (bare and www. variants).
	SiteURL string `mapstructure:"SITE_URL" yaml:"site_url"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse
	// proxies, handed to gin's SetTrustedProxies. It governs what ClientIP
	// reports; the rate limiter keys on X-Forwarded-For directly when the
	// header is present and only falls back to ClientIP without it.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// Origins developers submit from when running the frontend locally. Only
// honored outside production.
var devOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// AllowedOrigins derives the origin allow-list for the contact endpoint:
// the configured site URL plus its www-prefixed (or www-stripped) variant,
// and the local development origins in non-production environments.
func (c *ServerConfig) AllowedOrigins() []string {
	var origins []string
	if c.SiteURL != "" {
		base := strings.TrimSuffix(c.SiteURL, "/")
		origins = append(origins, base)
		if u, err := url.Parse(base); err == nil && u.Host != "" {
			if strings.HasPrefix(u.Host, "www.") {
				origins = append(origins, u.Scheme+"://"+strings.TrimPrefix(u.Host, "www."))
			} else {
				origins = append(origins, u.Scheme+"://www."+u.Host)
			}
		}
	}
	if c.Environment != EnvProduction {
		origins = append(origins, devOrigins...)
	}
	return origins
}

// RateLimitConfig holds configuration for the contact endpoint rate limiter.
type RateLimitConfig struct {
	// MaxRequests is the number of requests allowed per window per client IP.
	MaxRequests int `mapstructure:"MAX_REQUESTS" yaml:"max_requests"`
	// WindowSeconds is the window duration in seconds.
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Window returns the rate limit window as a duration.
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// RedisConfig holds Redis connection details. Redis is optional: when
// disabled the rate limiter falls back to a single-process in-memory store,
// which does not survive restarts or multi-instance deployment.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"ENABLED" yaml:"enabled"`
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// EmailConfig holds configuration for forwarding contact submissions by
// email. Forwarding is optional and disabled by default.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"ENABLED" yaml:"enabled"`
	FromAddress  string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName     string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ToAddress    string `mapstructure:"TO_ADDRESS" yaml:"to_address"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	Email     EmailConfig     `mapstructure:"EMAIL" yaml:"email"`
}

// IsDevelopment returns true if the application is running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into the Config struct, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.SITE_URL", "")
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("RATE_LIMIT.MAX_REQUESTS", 5)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("REDIS.ENABLED", false)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("EMAIL.ENABLED", false)
	v.SetDefault("EMAIL.FROM_NAME", "Portfolio Contact")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.SITE_URL", "SITE_URL"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"RATE_LIMIT.MAX_REQUESTS", "RATE_LIMIT_MAX_REQUESTS"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"REDIS.ENABLED", "REDIS_ENABLED"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"EMAIL.ENABLED", "EMAIL_ENABLED"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.TO_ADDRESS", "EMAIL_TO_ADDRESS"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"site_url", cfg.Server.SiteURL,
		"rate_limit_max", cfg.RateLimit.MaxRequests,
		"rate_limit_window_seconds", cfg.RateLimit.WindowSeconds,
		"redis_enabled", cfg.Redis.Enabled,
		"email_enabled", cfg.Email.Enabled,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if cfg.IsProduction() && cfg.Server.SiteURL == "" {
		return fmt.Errorf("site URL is required in production")
	}
	if cfg.Server.SiteURL != "" {
		if _, err := url.ParseRequestURI(cfg.Server.SiteURL); err != nil {
			return fmt.Errorf("invalid site URL %q: %w", cfg.Server.SiteURL, err)
		}
	}

	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if cfg.Email.Enabled {
		// Missing API key auto-disables forwarding instead of refusing to
		// boot; the contact endpoint works without it.
		if cfg.Email.ResendAPIKey == "" {
			log.Warn("Email forwarding enabled without a Resend API key, disabling forwarding")
			cfg.Email.Enabled = false
		} else {
			if cfg.Email.FromAddress == "" {
				return fmt.Errorf("email from address is required when forwarding is enabled")
			}
			if cfg.Email.ToAddress == "" {
				return fmt.Errorf("email to address is required when forwarding is enabled")
			}
		}
	}

	return nil
}
