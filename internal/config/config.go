package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server and the CLI
type Config struct {
	Env string

	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Submission SubmissionConfig
	Client     ClientConfig

	// notes gathered while loading, reported by Warnings
	notes []string
}

type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

// JWTConfig enables the bearer-token gate on write routes when Secret is set
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// SubmissionConfig controls how long idempotency keys of submissions are kept
type SubmissionConfig struct {
	KeyTTL time.Duration
}

// ClientConfig is used by tourctl to reach the backend
type ClientConfig struct {
	APIURL string
	Token  string
	// NestedActivities tells whether the backend accepts activity changes
	// on existing tours
	NestedActivities bool
	Timeout          time.Duration
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	var notes []string
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			notes = append(notes, fmt.Sprintf(".env file not found: %v", err))
		}
	}

	cfg := &Config{
		notes: notes,
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:              getEnv("SERVER_PORT", "8080"),
			ReadHeaderTimeout: getDurationEnv("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:         getEnv("POSTGRES_URL", ""),
			AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TokenTTL: getDurationEnv("JWT_TTL", time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", false),
		},
		Submission: SubmissionConfig{
			KeyTTL: getDurationEnv("SUBMIT_KEY_TTL", 10*time.Minute),
		},
		Client: ClientConfig{
			APIURL:           getEnv("TOURDESK_API_URL", "http://localhost:8080"),
			Token:            getEnv("TOURDESK_TOKEN", ""),
			NestedActivities: getBoolEnv("TOURDESK_NESTED_ACTIVITIES", false),
			Timeout:          getDurationEnv("TOURDESK_HTTP_TIMEOUT", 15*time.Second),
		},
	}

	return cfg, nil
}

// Validate checks what the API server needs to start
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("POSTGRES_URL is required")
	}
	if c.Submission.KeyTTL <= 0 {
		return fmt.Errorf("SUBMIT_KEY_TTL must be positive")
	}
	return nil
}

// Warnings lists settings that load fine but deserve attention. The caller
// logs them once a logger exists.
func (c *Config) Warnings() []string {
	warnings := append([]string(nil), c.notes...)
	if c.JWT.Secret == "" {
		warnings = append(warnings, "JWT_SECRET not set, write routes are not protected")
	}
	return warnings
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getStringSliceEnv splits a comma-separated value
func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
