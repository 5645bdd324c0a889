package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Club      ClubConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// ClubConfig holds portal-level settings
type ClubConfig struct {
	Name           string
	LabelBaseURL   string
	SeedAdminEmail string
	SeedAdminPass  string
	AllowSignup    bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3210"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "circuitology"),
		},
		Club: ClubConfig{
			Name:           getEnv("CLUB_NAME", "Circuitology Club"),
			LabelBaseURL:   getEnv("LABEL_BASE_URL", "CIRCUITOLOGY/"),
			SeedAdminEmail: getEnv("SEED_ADMIN_EMAIL", "admin@circuitology.local"),
			SeedAdminPass:  os.Getenv("SEED_ADMIN_PASSWORD"),
			AllowSignup:    getEnv("ALLOW_SIGNUP", "true") == "true",
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
