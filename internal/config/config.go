package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Database    DatabaseConfig
	APIKeys     []string
	RateLimit   RateLimitConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RateLimitConfig holds the per-key request budget for the API group
type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "voicenotes"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	rateLimitWindow, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_MINUTES: %w", err)
	}

	rateLimitMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX_REQUESTS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		Database:    dbConfig,
		APIKeys:     splitKeys(getEnv("API_KEYS", "test-api-key-123,test-key-456,prod-key-789")),
		RateLimit: RateLimitConfig{
			Window: time.Duration(rateLimitWindow) * time.Minute,
			Max:    rateLimitMax,
		},
	}, nil
}

// splitKeys parses a comma-separated key list, dropping empty entries.
func splitKeys(raw string) []string {
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
