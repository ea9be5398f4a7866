package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Completion service (OpenAI-compatible)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Catalog search
	CatalogEnabled bool
	CatalogLimit   int

	// Brevo attribution sync
	BrevoAPIKey string
	BrevoListID int

	// Dashboard admin account
	AdminUser         string
	AdminPasswordHash string

	// Offline classification job
	ClassifyInterval  time.Duration
	ClassifyBatchSize int

	// Server configuration
	Port         string
	AllowOrigins string
	RateLimitMax int
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:      getEnv("MONGO_DB_NAME", "tucan_chat"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CatalogEnabled:    getEnvBool("CATALOG_ENABLED", true),
		CatalogLimit:      getEnvInt("CATALOG_LIMIT", 6),
		BrevoAPIKey:       getEnv("BREVO_API_KEY", ""),
		BrevoListID:       getEnvInt("BREVO_LIST_ID", 6),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		ClassifyInterval:  time.Duration(getEnvInt("CLASSIFY_INTERVAL_MINUTES", 15)) * time.Minute,
		ClassifyBatchSize: getEnvInt("CLASSIFY_BATCH_SIZE", 500),
		Port:              getEnv("PORT", "3000"),
		AllowOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 120),
	}

	// Validate required configuration
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, chat will always answer with the fallback message")
	}
	if cfg.AdminPasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD_HASH not set, dashboard login is disabled")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		slog.Warn("Invalid integer in environment, using default", "key", key, "default", defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		slog.Warn("Invalid boolean in environment, using default", "key", key, "default", defaultValue)
	}
	return defaultValue
}
