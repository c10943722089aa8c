package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

func loadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

// Config returns the raw value of an environment variable, loading .env on first use.
func Config(key string) string {
	loadEnv()
	return os.Getenv(key)
}

type AppConfig struct {
	Environment string
	Port        string

	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	JWTTTL      time.Duration

	CloudinaryURL    string
	CloudinaryFolder string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	SweepSchedule    string
	RatingSchedule   string
	ReminderSchedule string
	StatisticsTTL    time.Duration
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Environment:      getOr("ENV", "development"),
		Port:             getOr("PORT", "8080"),
		DatabaseURL:      Config("DATABASE_URL"),
		RedisURL:         Config("REDIS_URL"),
		JWTSecret:        Config("JWT_SECRET"),
		JWTTTL:           durationOr("JWT_TTL", 72*time.Hour),
		CloudinaryURL:    Config("CLOUDINARY_URL"),
		CloudinaryFolder: getOr("CLOUDINARY_FOLDER", "lesson_attachments"),
		BrevoAPIKey:      Config("BREVO_API_KEY"),
		EmailSender:      Config("EMAIL_SENDER"),
		EmailSenderName:  Config("EMAIL_SENDER_NAME"),
		AdminEmail:       Config("ADMIN_EMAIL"),
		AdminPassword:    Config("ADMIN_PASSWORD"),
		AdminFullName:    getOr("ADMIN_FULL_NAME", "Administrator"),
		SweepSchedule:    getOr("LESSON_SWEEP_SCHEDULE", "*/5 * * * *"),
		RatingSchedule:   getOr("RATING_RECOMPUTE_SCHEDULE", "0 3 * * *"),
		ReminderSchedule: getOr("LESSON_REMINDER_SCHEDULE", "*/5 * * * *"),
		StatisticsTTL:    durationOr("STATISTICS_CACHE_TTL", 10*time.Minute),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

// durationOr accepts Go duration strings ("15m") or a plain number of seconds.
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: invalid duration %q for %s, using %s", raw, key, fallback)
	return fallback
}
