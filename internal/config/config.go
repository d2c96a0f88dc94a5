package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:           getEnv("ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
	}

	ttlStr := getEnv("SESSION_TTL", "720h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 720h\n", ttlStr)
		ttl = 30 * 24 * time.Hour
	}
	config.SessionTTL = ttl

	secureStr := getEnv("SECURE_COOKIE", "false")
	secure, err := strconv.ParseBool(secureStr)
	if err != nil {
		log.Printf("Warning: invalid SECURE_COOKIE value '%s', falling back to false\n", secureStr)
	}
	config.SecureCookie = secure

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
