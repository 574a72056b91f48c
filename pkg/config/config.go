package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DATABASE_URL wins over the discrete DB_* settings when set.
	DatabaseURL string

	DB DBConfig

	Session SessionConfig

	// FeedAllowedOrigins is a comma-separated allowlist of origins allowed to
	// call the calendar feed endpoint from a separate frontend domain. Example:
	//   https://calendar.yourapp.com,http://localhost:5173
	FeedAllowedOrigins []string

	// RecheckOnApprove re-runs the booking conflict check when an admin
	// approves a request, refusing approvals that would double-book a
	// resource. Off by default: the historical behavior lets the admin
	// resolve overlapping pending requests manually.
	RecheckOnApprove bool

	// SiteName is surfaced to clients for display (optional).
	SiteName string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type SessionConfig struct {
	// Secret signs session tokens. Must be overridden outside dev.
	Secret string

	// TTLHours bounds session token lifetime.
	TTLHours int
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8080"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "spacebook"),
			User:     env("DB_USER", "spacebook"),
			Password: env("DB_PASSWORD", "spacebook"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret:   env("SESSION_SECRET", "dev-key-fallback"),
			TTLHours: envInt("SESSION_TTL_HOURS", 12),
		},
		FeedAllowedOrigins: envList("FEED_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
		RecheckOnApprove:   envBool("BOOKING_RECHECK_ON_APPROVE", false),
		SiteName:           env("SITE_NAME", "Space Booking System"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
