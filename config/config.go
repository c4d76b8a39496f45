package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	// Data directory
	DataDir string

	// Database
	DatabasePath string

	// External services
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	MeiliHost   string
	MeiliAPIKey string
	MeiliIndex  string

	// Cleanup pipeline settings
	PolishWorkers   int
	PolishQueueSize int

	// Prompt overrides
	PromptsDir string

	// Logging
	LogLevel string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

// load reads configuration from environment variables
func load() *Config {
	// Local .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		// Server
		Port: getEnvInt("PORT", 8080),
		Host: getEnv("HOST", "0.0.0.0"),
		Env:  getEnv("ENV", "development"),

		// Data
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "transcripts.sqlite"),

		// OpenAI
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		// Meilisearch
		MeiliHost:   getEnv("MEILI_HOST", ""),
		MeiliAPIKey: getEnv("MEILI_API_KEY", ""),
		MeiliIndex:  getEnv("MEILI_INDEX", "transcripts"),

		// Pipeline
		PolishWorkers:   getEnvInt("POLISH_WORKERS", 2),
		PolishQueueSize: getEnvInt("POLISH_QUEUE_SIZE", 100),

		// Prompts
		PromptsDir: getEnv("PROMPTS_DIR", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
