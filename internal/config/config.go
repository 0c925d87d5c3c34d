package config

import (
	"os"
	"strings"
)

// Config holds everything the server reads from the environment.
// godotenv loads the .env file in main before this runs.
type Config struct {
	DBDriver          string // "mysql" (default) or "sqlite"
	DBDSN             string
	JWTSecret         string
	AdminEmails       []string // comma-separated allow-list in ADMIN_EMAILS
	AllowRegistration bool
	OfflineCacheDir   string
	BaseURL           string
	Port              string
	GeminiAPIKey      string
}

func Load() Config {
	cfg := Config{
		DBDriver:          getenv("DB_DRIVER", "mysql"),
		DBDSN:             os.Getenv("DB_DSN"),
		JWTSecret:         getenv("JWT_SECRET", "change_me_in_production"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		OfflineCacheDir:   getenv("OFFLINE_CACHE_DIR", "./offline_cache"),
		BaseURL:           getenv("BASE_URL", "http://localhost:8080"),
		Port:              getenv("PORT", "8080"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
	}

	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(e))
		}
	}

	return cfg
}

// IsAdmin reports whether an email is on the admin allow-list.
// Comparison is case-insensitive.
func (c Config) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
