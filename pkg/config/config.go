package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Context engine defaults, overridable per request.
	ContextMaxThreadEmails    int
	ContextMaxSenderEmails    int
	ContextSenderLookbackDays int
	ContextTotalTokenBudget   int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=replydraft port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		ContextMaxThreadEmails:    getEnvInt("CONTEXT_MAX_THREAD_EMAILS", 10),
		ContextMaxSenderEmails:    getEnvInt("CONTEXT_MAX_SENDER_EMAILS", 5),
		ContextSenderLookbackDays: getEnvInt("CONTEXT_SENDER_LOOKBACK_DAYS", 30),
		ContextTotalTokenBudget:   getEnvInt("CONTEXT_TOTAL_TOKEN_BUDGET", 8000),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
