package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultOrigin = "http://localhost:3000"

// Config holds the runtime settings read from the environment.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       string
	Env            string
	AllowedOrigins []string
	GinMode        string
}

// Load reads settings from the environment, after merging an optional .env
// file from the working directory. Variables already set win over .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./pos.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Env:            getEnv("APP_ENV", "production"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultOrigin)),
		GinMode:        getEnv("GIN_MODE", "release"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{defaultOrigin}
	}
	return out
}
