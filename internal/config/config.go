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
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Stock quotes
	AlphaVantageAPIKey  string
	AlphaVantageBaseURL string
	QuoteCacheDuration  time.Duration
	QuoteUseMock        bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finpro"),
		DBPassword: getEnv("DB_PASSWORD", "finpro"),
		DBName:     getEnv("DB_NAME", "finpro"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Stock quotes
		AlphaVantageAPIKey:  getEnv("ALPHAVANTAGE_API_KEY", "demo"),
		AlphaVantageBaseURL: getEnv("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co/query"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Parse quote cache duration
	cacheStr := getEnv("QUOTE_CACHE_DURATION", "5m")
	cacheDur, err := time.ParseDuration(cacheStr)
	if err != nil {
		log.Printf("Warning: invalid QUOTE_CACHE_DURATION value '%s', falling back to 5m\n", cacheStr)
		cacheDur = 5 * time.Minute
	}
	config.QuoteCacheDuration = cacheDur

	// Parse mock-mode flag
	useMock, err := strconv.ParseBool(getEnv("QUOTE_USE_MOCK", "false"))
	if err != nil {
		log.Printf("Warning: invalid QUOTE_USE_MOCK value, falling back to false\n")
		useMock = false
	}
	config.QuoteUseMock = useMock

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
