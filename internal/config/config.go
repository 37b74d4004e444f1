package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	BaseURL  string
	LogLevel slog.Level

	DBDriver   string
	DBDSN      string
	DBRetries  int
	DBLogLevel string

	JWTSecret       string
	JWTExpiresHours int

	CORSOrigins []string

	SaleTxTimeout time.Duration

	UploadDir      string
	UploadMaxBytes int64

	GeminiAPIKey string
}

// Load reads the environment (and .env, when present) into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}

	port := getEnv("PORT", "8080")
	return Config{
		Port:     port,
		BaseURL:  getEnv("BASE_URL", "http://localhost:"+port),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:      getEnv("DB_DSN", ""),
		DBRetries:  getEnvInt("DB_CONNECT_RETRIES", 5),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresHours: getEnvInt("JWT_EXPIRES_HOURS", 24),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		SaleTxTimeout: getEnvDuration("SALE_TX_TIMEOUT", 10*time.Second),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 2_000_000)),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
