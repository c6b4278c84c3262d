package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the engine
type Config struct {
	Redis  RedisConfig
	Combat CombatConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CombatConfig holds the combat safety limits
type CombatConfig struct {
	MaxRounds int
	Timeout   time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Combat: CombatConfig{
			MaxRounds: getEnvAsIntOrDefault("COMBAT_MAX_ROUNDS", 50),
			Timeout:   time.Duration(getEnvAsIntOrDefault("COMBAT_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
