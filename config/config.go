package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Web      WebConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds admin token signing settings.
type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// StorageConfig holds the S3-compatible bucket used for payment screenshots.
// Endpoint is optional; set it for R2 or MinIO.
type StorageConfig struct {
	Region             string
	Endpoint           string
	AccessKeyID        string
	SecretAccessKey    string
	Bucket             string
	UsePathStyle       bool
	SignedURLTTLSecond int
	MaxScreenshotMB    int
}

// CacheConfig holds TTLs for the read cache. They match the polling cadence of the front-end.
type CacheConfig struct {
	CountTTL       time.Duration
	ListTTL        time.Duration
	SlotsTTL       time.Duration
	RefreshEvery   time.Duration
	CountStaleness time.Duration
}

// WebConfig points at the built front-end served with SPA fallback. Empty disables it.
type WebConfig struct {
	StaticDir string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// SignedURLTTL returns the lifetime of screenshot URLs handed to admins.
func (c StorageConfig) SignedURLTTL() time.Duration {
	if c.SignedURLTTLSecond <= 0 {
		return time.Hour
	}
	return time.Duration(c.SignedURLTTLSecond) * time.Second
}

// MaxScreenshotBytes returns the upload size limit.
func (c StorageConfig) MaxScreenshotBytes() int64 {
	if c.MaxScreenshotMB <= 0 {
		return 5 << 20
	}
	return int64(c.MaxScreenshotMB) << 20
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "tournaments"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 12),
		},
		Storage: StorageConfig{
			Region:             getEnv("S3_REGION", getEnv("AWS_REGION", "us-east-1")),
			Endpoint:           getEnv("S3_ENDPOINT", ""),
			AccessKeyID:        getEnv("S3_ACCESS_KEY_ID", getEnv("AWS_ACCESS_KEY_ID", "")),
			SecretAccessKey:    getEnv("S3_SECRET_ACCESS_KEY", getEnv("AWS_SECRET_ACCESS_KEY", "")),
			Bucket:             getEnv("S3_SCREENSHOT_BUCKET", "payment-screenshots"),
			UsePathStyle:       getEnvBool("S3_USE_PATH_STYLE", false),
			SignedURLTTLSecond: getEnvInt("SCREENSHOT_URL_TTL_SECONDS", 3600),
			MaxScreenshotMB:    getEnvInt("MAX_SCREENSHOT_MB", 5),
		},
		Cache: CacheConfig{
			CountTTL:       getEnvDuration("CACHE_COUNT_TTL", 5*time.Second),
			ListTTL:        getEnvDuration("CACHE_LIST_TTL", 10*time.Second),
			SlotsTTL:       getEnvDuration("CACHE_SLOTS_TTL", 5*time.Second),
			RefreshEvery:   getEnvDuration("SLOT_REFRESH_INTERVAL", 5*time.Second),
			CountStaleness: getEnvDuration("COUNT_STALE_AFTER", 3*time.Second),
		},
		Web: WebConfig{
			StaticDir: getEnv("STATIC_DIR", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("5s") or plain seconds ("5").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
