package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/joy095/propertyops/logger"
)

var envOnce sync.Once

// LoadEnv reads a .env file from the working directory once. A missing file
// is not an error; real environment variables always win.
func LoadEnv() {
	envOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			logger.DebugLogger.Debugf("No .env file loaded: %v", err)
		}
	})
}

// Lock backends understood by LOCK_BACKEND.
const (
	LockBackendLocal    = "local"
	LockBackendRedis    = "redis"
	LockBackendPostgres = "postgres"
)

// Config is the runtime configuration of the service.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	LockBackend    string
	LockTimeout    time.Duration
	Location       *time.Location
	JWTSecret      []byte
	AllowedOrigins []string
	RateLimit      string
	InventoryFile  string
}

// Load builds a Config from the environment, applying defaults for anything unset.
func Load() *Config {
	LoadEnv()

	cfg := &Config{
		Port:          getEnv("PORT", "8081"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		LockTimeout:   getDuration("LOCK_TIMEOUT", 2*time.Second),
		Location:      time.UTC,
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		RateLimit:     getEnv("RATE_LIMIT", "120-1m"),
		InventoryFile: os.Getenv("INVENTORY_FILE"),
	}

	if tz := os.Getenv("PROPERTY_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.WarnLogger.Warnf("Invalid PROPERTY_TIMEZONE %q, falling back to UTC: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	cfg.LockBackend = strings.ToLower(os.Getenv("LOCK_BACKEND"))
	if cfg.LockBackend == "" {
		cfg.LockBackend = LockBackendLocal
		if cfg.RedisURL != "" {
			cfg.LockBackend = LockBackendRedis
		}
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logger.WarnLogger.Warnf("Invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
