package config

import (
	"os"
	"strconv"
	"time"
)

type ResendConfig struct {
	APIKey   string
	From     string
	FromName string
}

type Config struct {
	Port           string
	DatabasePath   string
	PublicBaseURL  string
	SessionTimeout time.Duration
	Resend         ResendConfig
	SeedSampleData bool
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabasePath = getEnv("LAMMATNA_DB", "lammatna.db")
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080")

	// The browser prototype logged users out after 30 minutes of inactivity.
	minutes, err := strconv.Atoi(getEnv("SESSION_TIMEOUT_MINUTES", "30"))
	if err != nil || minutes <= 0 {
		minutes = 30
	}
	cfg.SessionTimeout = time.Duration(minutes) * time.Minute

	cfg.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Resend.From = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Resend.FromName = getEnv("EMAIL_FROM_NAME", "Lammatna")

	cfg.SeedSampleData = os.Getenv("SEED_SAMPLE_DATA") == "true"

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
