package config

import (
	"fmt"
	"os"
)

// Config carries everything the process reads from the environment. Nothing
// in here is hardcoded; main loads a .env file first if one exists.
type Config struct {
	DBHost   string
	DBUser   string
	DBKey    string
	DBSchema string
	DBPort   string

	RedisHost string
	RedisPort string

	Port           string
	AllowedOrigins string
}

// Load assembles the configuration from environment variables. The database
// settings have no sane defaults and are required; everything else falls
// back to local-development values.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBKey:          os.Getenv("DB_KEY"),
		DBSchema:       os.Getenv("DB_SCHEMA"),
		DBPort:         getEnv("DB_PORT", "5432"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	for name, value := range map[string]string{
		"DB_HOST":   cfg.DBHost,
		"DB_USER":   cfg.DBUser,
		"DB_KEY":    cfg.DBKey,
		"DB_SCHEMA": cfg.DBSchema,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is not set in the environment", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
