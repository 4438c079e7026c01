package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	GRPCPort int
	HTTPPort int

	StorageDriver string
	SQLitePath    string
	RedisAddr     string
	RedisPrefix   string

	CatalogFile           string
	CatalogLegacyFallback bool

	NotificationTTL    time.Duration
	CheckoutCloseDelay time.Duration

	CORSOrigins []string
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:    getEnv("APP_ENV", "dev"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		GRPCPort:  getEnvInt("GRPC_PORT", 8081),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/stylehub.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "stylehub:"),

		CatalogFile:           getEnv("CATALOG_FILE", ""),
		CatalogLegacyFallback: getEnvBool("CATALOG_LEGACY_FALLBACK", false),

		NotificationTTL:    getEnvDuration("NOTIFICATION_TTL", 3*time.Second),
		CheckoutCloseDelay: getEnvDuration("CHECKOUT_CLOSE_DELAY", 2*time.Second),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
