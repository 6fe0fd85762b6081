package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode         string
	Port            string
	AllowSelfSignup bool
	Database        DatabaseConfig
	JWT             JWTConfig
	Log             LogConfig
}

// DatabaseConfig holds MySQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret     string
	ExpiryDays int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; in production everything comes from the environment
	_ = godotenv.Load()

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: %q (must be 'dev' or 'prod')", appMode)
	}

	selfSignup, _ := strconv.ParseBool(getEnv("ALLOW_SELF_SIGNUP", "true"))
	expiryDays, _ := strconv.Atoi(getEnv("JWT_EXPIRY_DAYS", "7"))

	return &Config{
		AppMode:         appMode,
		Port:            getEnv("PORT", "3000"),
		AllowSelfSignup: selfSignup,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "dairyhub"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "fallback_secret"),
			ExpiryDays: expiryDays,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		return "*"
	}
	return origins
}
