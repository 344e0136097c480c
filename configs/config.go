package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

// Config reads a key from the environment, loading .env on first use.
func Config(key string) string {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
	return os.Getenv(key)
}

// ConfigOr reads a key from the environment, falling back to def when the
// key is unset or empty.
func ConfigOr(key, def string) string {
	if value := Config(key); value != "" {
		return value
	}
	return def
}
