package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Expiry   ExpiryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name     string
	Env      string
	Host     string
	Port     string
	Version  string
	BasePath string
}

// HTTPConfig holds transport level settings.
type HTTPConfig struct {
	RequestTimeoutSeconds int
	CORSAllowedOrigin     string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	RequireToken          bool
}

// ExpiryConfig controls the background expiry sweep.
type ExpiryConfig struct {
	SweepIntervalMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "pantry-service"),
			Env:      getEnv("APP_ENV", "development"),
			Host:     getEnv("APP_HOST", "0.0.0.0"),
			Port:     getEnv("APP_PORT", "8080"),
			Version:  getEnv("APP_VERSION", "dev"),
			BasePath: normalizeBasePath(os.Getenv("APP_BASE_PATH")),
		},
		HTTP: HTTPConfig{
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowedOrigin:     getEnv("HTTP_CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			RequireToken:          getEnvAsBool("AUTH_REQUIRE_TOKEN", false),
		},
		Expiry: ExpiryConfig{
			SweepIntervalMinutes: getEnvAsInt("EXPIRY_SWEEP_INTERVAL_MINUTES", 0),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (h HTTPConfig) RequestTimeout() time.Duration {
	if h.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(h.RequestTimeoutSeconds) * time.Second
}

// SweepInterval returns the expiry sweep period; zero disables the sweep.
func (e ExpiryConfig) SweepInterval() time.Duration {
	if e.SweepIntervalMinutes <= 0 {
		return 0
	}
	return time.Duration(e.SweepIntervalMinutes) * time.Minute
}

// normalizeBasePath turns "api/" or "/api/" into "/api"; empty stays empty.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
