package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Ollama (local model server)
	OllamaBaseURL string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Gemini (cloud API)
	GeminiAPIKey string

	// CORS
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance from environment variables.
// Secrets support the *_FILE convention used for Docker secrets.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8000"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "quimilab"),
		DBName:    getEnv("DB_NAME", "quimilab"),
		DBSSLMode: getEnv("DB_SSL_MODE", "disable"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisURL:  os.Getenv("REDIS_URL"),

		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2:latest"),
		OllamaTimeout: 120 * time.Second,
	}

	var err error
	if cfg.DBPassword, err = readSecretEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.RedisPassword, err = readSecretEnv("REDIS_PASSWORD"); err != nil {
		return nil, err
	}
	// Gemini key is optional: without it the cascade skips the Gemini tier.
	if cfg.GeminiAPIKey, err = readSecretEnv("GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if timeoutStr := os.Getenv("OLLAMA_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid OLLAMA_TIMEOUT_SECONDS: %w", err)
		}
		cfg.OllamaTimeout = time.Duration(seconds) * time.Second
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecretEnv reads a secret from KEY or, if set, from the file named by
// KEY_FILE. A missing secret is not an error here; ValidateConfig decides
// what the current environment requires.
func readSecretEnv(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	file := os.Getenv(key + "_FILE")
	if file == "" {
		return "", nil
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file for %s: %w", key, err)
	}
	return strings.TrimSpace(string(content)), nil
}
