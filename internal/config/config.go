package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	AppEnv      string

	// JWTSecret enables the bearer-token middleware when non-empty.
	// Token issuance belongs to the dashboard's auth service.
	JWTSecret string

	// KafkaBrokers enables lifecycle event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	CORSAllowedOrigins []string
}

// Load reads .env (best effort) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getenvDefault("PORT", "8080"),
		AppEnv:      getenvDefault("APP_ENV", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		KafkaTopic:  getenvDefault("KAFKA_TOPIC", "skynest.bookings"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitCSV(brokers)
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitCSV(origins)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
