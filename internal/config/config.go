package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	WebSocket WebSocketConfig
	SSE       SSEConfig
	Logging   LoggingConfig
	App       AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT,default=:8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT,default=15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT,default=60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=30s"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int32         `env:"DB_MAX_CONNS,default=25"`
	MinConns        int32         `env:"DB_MIN_CONNS,default=2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME,default=5m"`
	MigrationsPath  string        `env:"DB_MIGRATIONS_PATH,default=file://migrations"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE,default=true"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret         string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL,default=12h"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `env:"RATE_LIMIT_ENABLED,default=true"`
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS,default=10"`
	BurstSize         int     `env:"RATE_LIMIT_BURST,default=20"`
	AuthRPS           float64 `env:"RATE_LIMIT_AUTH_RPS,default=1"` // Stricter limit for auth endpoints
	AuthBurst         int     `env:"RATE_LIMIT_AUTH_BURST,default=5"`
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	AllowedOrigins     string        `env:"WS_ALLOWED_ORIGINS"`
	ReadBufferSize     int           `env:"WS_READ_BUFFER_SIZE,default=1024"`
	WriteBufferSize    int           `env:"WS_WRITE_BUFFER_SIZE,default=1024"`
	PingInterval       time.Duration `env:"WS_PING_INTERVAL,default=54s"`
	PongWait           time.Duration `env:"WS_PONG_WAIT,default=60s"`
	WriteWait          time.Duration `env:"WS_WRITE_WAIT,default=10s"`
	SendBuffer         int           `env:"WS_SEND_BUFFER,default=256"`
	BroadcastBuffer    int           `env:"WS_BROADCAST_BUFFER,default=256"`
	EnforceEntitlement bool          `env:"WS_ENFORCE_ROOM_ENTITLEMENT,default=false"`
	ControlRate        float64       `env:"WS_CONTROL_RATE,default=10"`
	ControlBurst       int           `env:"WS_CONTROL_BURST,default=20"`
}

// SSEConfig holds Server-Sent Events configuration
type SSEConfig struct {
	HeartbeatInterval time.Duration `env:"SSE_HEARTBEAT_INTERVAL,default=30s"`
	SendBuffer        int           `env:"SSE_SEND_BUFFER,default=64"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`  // debug, info, warn, error
	Format string `env:"LOG_FORMAT,default=json"` // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `env:"APP_NAME,default=distribution-backend"`
	Version     string `env:"APP_VERSION,default=dev"`
	Environment string `env:"APP_ENV,default=development"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return FromEnviron()
}

// FromEnviron builds the configuration from the process environment only.
func FromEnviron() (*Config, error) {
	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	// Security validations
	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
		}

		if len(c.WebSocket.Origins()) == 0 {
			errs = append(errs, "WS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, "DB_MIN_CONNS cannot be greater than DB_MAX_CONNS")
	}

	if c.WebSocket.PingInterval >= c.WebSocket.PongWait {
		errs = append(errs, "WS_PING_INTERVAL must be shorter than WS_PONG_WAIT")
	}

	if c.SSE.HeartbeatInterval <= 0 {
		errs = append(errs, "SSE_HEARTBEAT_INTERVAL must be positive")
	}

	if c.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, "JWT_ACCESS_TOKEN_TTL must be positive")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Origins returns the allowed WebSocket origins.
func (w WebSocketConfig) Origins() []string {
	return splitList(w.AllowedOrigins)
}

// Origins returns the allowed CORS origins, all origins when unset.
func (s ServerConfig) Origins() []string {
	origins := splitList(s.CORSOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
