package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_TYPE.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	StorageType string
	DataPath    string
	RedisURL    string
	DatabaseURL string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		StorageType: getEnvOrDefault("STORAGE_TYPE", StorageFile),
		DataPath:    getEnvOrDefault("DATA_PATH", "./data"),
		RedisURL:    getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
