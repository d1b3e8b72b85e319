package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	State   StateConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StateConfig struct {
	// Dir holds persisted client state (cart mirror, session, theme).
	Dir string
}

type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("DOTMARKET_API_URL", "http://localhost:3000/api"),
			Timeout: parseDuration(getEnv("DOTMARKET_API_TIMEOUT", "10s")),
		},
		State: StateConfig{
			Dir: getEnv("DOTMARKET_STATE_DIR", defaultStateDir()),
		},
		Logging: LoggingConfig{
			Level:  getEnv("DOTMARKET_LOG_LEVEL", "info"),
			Format: getEnv("DOTMARKET_LOG_FORMAT", "console"),
		},
	}

	return config, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dotmarket"
	}
	return filepath.Join(home, ".dotmarket")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 10s", s)
		return 10 * time.Second
	}
	return duration
}
