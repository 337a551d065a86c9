package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"
)

// defaultAllowedOrigins is echoed back on CORS requests from known
// frontend hosts; anything else gets the wildcard.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://app.onetask.io",
}

// Config holds all configuration for the application
type Config struct {
	fx.Out

	LogLevel       zapcore.Level
	DatabaseURL    string   `name:"database_url"`
	StoreBackend   string   `name:"store_backend"`
	Port           int      `name:"port"`
	Version        string   `name:"version"`
	AllowedOrigins []string `name:"allowed_origins"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := Config{}

	// Configure logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	switch logLevel {
	case "debug":
		config.LogLevel = zapcore.DebugLevel
	case "info":
		config.LogLevel = zapcore.InfoLevel
	default:
		config.LogLevel = zapcore.WarnLevel
	}

	// Configure storage. The in-memory backend needs no connection
	// string; postgres does.
	config.StoreBackend = os.Getenv("STORE_BACKEND")
	if config.StoreBackend == "" {
		config.StoreBackend = "memory"
	}
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	if config.StoreBackend == "postgres" && config.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}

	// Configure port
	config.Port = 8080
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		config.Port = port
	}

	// Configure CORS origins
	config.AllowedOrigins = defaultAllowedOrigins
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		config.AllowedOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	}

	// Configure version
	config.Version = os.Getenv("VERSION")
	if config.Version == "" {
		config.Version = "VERSION_UNAVAILABLE"
	}

	return config, nil
}
