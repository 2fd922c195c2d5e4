package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	StateFile      string
	RequestTimeout time.Duration

	// Stub server settings.
	Port            string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return Config{
		APIBaseURL:      strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:8080"), "/"),
		StateFile:       getEnvOrDefault("STATE_FILE", defaultStateFile()),
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 30, time.Second),
		Port:            getEnvOrDefault("PORT", "8080"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "tastebite-dev-secret"),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),
	}
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tastebite.json"
	}
	return home + "/.tastebite.json"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
