package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string

	// Gemini
	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string

	// Server
	Port  string
	Debug bool

	// Session store
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SessionTTLMinutes int

	// Search behavior
	MinScoreFloor        int
	MaxMatchesReturned   int // 0 returns every match above the floor
	MaxConcurrentScoring int
	MaxToolCycles        int

	// Timeouts
	LLMTimeoutSeconds int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ProjectID: getEnv("PROJECT_ID", ""),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),

		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),

		MinScoreFloor:        getEnvInt("MIN_SCORE_FLOOR", 0),
		MaxMatchesReturned:   getEnvInt("MAX_MATCHES_RETURNED", 0),
		MaxConcurrentScoring: getEnvInt("MAX_CONCURRENT_SCORING", 8),
		MaxToolCycles:        getEnvInt("MAX_TOOL_CYCLES", 5),

		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 30),
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore"}
	}
	if c.GeminiAPIKey == "" {
		return &ConfigError{Field: "GEMINI_API_KEY", Message: "GEMINI_API_KEY is required for the agent and embeddings"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
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
