package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultMaxFileSize is the upload size ceiling applied when
// MAX_FILE_SIZE is not set (20 MiB).
const DefaultMaxFileSize int64 = 20 << 20

// Config holds every runtime setting. It is built once in main and
// passed into constructors; nothing reads the environment after Load.
type Config struct {
	HTTPPort       string
	DatabaseURL    string // empty -> local SQLite file
	AuthBase       string // base URL of the auth service; empty disables the gate
	Debug          bool
	AdminJWTSecret string
	MaxFileSize    int64
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "file.db"),
		AuthBase:       os.Getenv("AUTH_BASE"),
		Debug:          parseBool(os.Getenv("DEBUG")),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		MaxFileSize:    DefaultMaxFileSize,
	}

	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_FILE_SIZE %q", raw)
		}
		cfg.MaxFileSize = size
	}

	if cfg.Debug && cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required when DEBUG is enabled")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(value string) bool {
	return value == "true" || value == "1"
}
