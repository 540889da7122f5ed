// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings for the server.
type Config struct {
	ServerAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	MailHost   string
	MailPort   string
	MailUser   string
	MailPass   string
	MailSender string

	// Fixed-window budget for /login and /forgot-password, per client IP.
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Load reads the configuration from the environment, applying defaults
// suitable for local development.
func Load() *Config {
	limit, _ := strconv.Atoi(getEnvOrDefault("AUTH_RATE_LIMIT", "10"))
	if limit <= 0 {
		limit = 10
	}

	return &Config{
		ServerAddr: getEnvOrDefault("SERVER_ADDR", ":8080"),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "taskbite"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvOrDefault("DB_NAME", "taskbite"),

		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDurationOrDefault("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getDurationOrDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		ResetTokenTTL:   getDurationOrDefault("RESET_TOKEN_TTL", time.Hour),

		MailHost:   getEnvOrDefault("MAIL_HOST", "smtp.gmail.com"),
		MailPort:   getEnvOrDefault("MAIL_PORT", "587"),
		MailUser:   os.Getenv("MAIL_USERNAME"),
		MailPass:   os.Getenv("MAIL_PASSWORD"),
		MailSender: getEnvOrDefault("MAIL_FROM", "no-reply@taskbite.local"),

		AuthRateLimit:  limit,
		AuthRateWindow: getDurationOrDefault("AUTH_RATE_WINDOW", time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
