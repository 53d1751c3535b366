package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrConfigurationMissing is returned when a required setting is absent.
var ErrConfigurationMissing = errors.New("required configuration missing")

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Cors         CorsConfig
	Cache        CacheConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig defines authentication parameters.
//
// TokenTTL is nil when tokens are issued without expiry. Cookie.Secure
// defaults to false only when APP_ENV=development.
type AuthConfig struct {
	SecretKey       string
	Issuer          string
	TokenTTL        *time.Duration
	SlidingExpiry   bool
	ClaimIdentifier string
	BcryptCost      int
	Cookie          CookieConfig
}

// CookieConfig describes the session cookie attributes.
type CookieConfig struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite string
}

// CorsConfig lists the frontend allowed to call the API with credentials.
type CorsConfig struct {
	FrontendURL string
}

// CacheConfig tunes the Redis-backed read cache.
type CacheConfig struct {
	NewestAnimalsTTLSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	secret := os.Getenv("AUTH_SECRET_KEY")
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("AUTH_SECRET_KEY: %w", ErrConfigurationMissing)
	}

	ttl, err := parseTTL(getEnv("AUTH_TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	env := getEnv("APP_ENV", "production")

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "pawup-api"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("SERVER_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("DATABASE_URL"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", ""),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: strings.EqualFold(env, "development"),
		},
		Auth: AuthConfig{
			SecretKey:       secret,
			Issuer:          getEnv("AUTH_ISSUER", ""),
			TokenTTL:        ttl,
			SlidingExpiry:   getEnvAsBool("AUTH_TOKEN_SLIDING", false),
			ClaimIdentifier: getEnv("AUTH_CLAIM_IDENTIFIER", "email"),
			BcryptCost:      getEnvAsInt("AUTH_BCRYPT_COST", 10),
			Cookie: CookieConfig{
				Name:     getEnv("AUTH_COOKIE_NAME", "access-token"),
				Domain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
				Path:     getEnv("AUTH_COOKIE_PATH", "/"),
				Secure:   getEnvAsBool("AUTH_COOKIE_SECURE", !strings.EqualFold(env, "development")),
				HTTPOnly: getEnvAsBool("AUTH_COOKIE_HTTP_ONLY", true),
				SameSite: getEnv("AUTH_COOKIE_SAME_SITE", "Lax"),
			},
		},
		Cors: CorsConfig{
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Cache: CacheConfig{
			NewestAnimalsTTLSeconds: getEnvAsInt("CACHE_NEWEST_ANIMALS_TTL_SECONDS", 300),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@pawup.local"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsDevelopment reports whether the service runs in a local development setup.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// NewestAnimalsTTL returns how long the newest-animals feed stays cached.
func (c CacheConfig) NewestAnimalsTTL() time.Duration {
	if c.NewestAnimalsTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.NewestAnimalsTTLSeconds) * time.Second
}

// parseTTL returns nil for "none" or a zero duration.
func parseTTL(raw string) (*time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") || raw == "0" {
		return nil, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, fmt.Errorf("negative duration %s", raw)
	}
	if d == 0 {
		return nil, nil
	}
	return &d, nil
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
