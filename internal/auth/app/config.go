package app

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret string // Required for login and authentication; absence is a configuration error
	Issuer    string // Optional: issuer claim for session tokens (default: qure-auth)

	ResetTokenTTL time.Duration // Optional: password reset link lifetime (default: 1h)
	ResetBaseURL  string        // Optional: frontend origin for reset links (default: http://localhost:5173)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./qure.db)
	DatabaseURL    string // Required for postgres: connection string
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	MailTransport     string // Optional: log or smtp (default: log)
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	MailFrom          string // Optional: From header (default: Qure <no-reply@qure.local>)
	MailRatePerMinute int    // Optional: outbound mail pacing, 0 disables (default: 60)

	Env                  string        // Environment (development, staging, production) (default: production)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 5000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after loading an optional .env file
// from the working directory. Variables already set take precedence.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		JWTSecret: os.Getenv("JWT_SECRET"),
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "qure-auth"),

		ResetTokenTTL: getEnvDurationOrDefault("RESET_TOKEN_TTL", time.Hour),
		ResetBaseURL:  getEnvOrDefault("RESET_BASE_URL", "http://localhost:5173"),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("AUTH_DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "qure.db"),
		DatabaseURL:    os.Getenv("AUTH_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"), // Default to ./pepper

		MailTransport:     strings.ToLower(getEnvOrDefault("MAIL_TRANSPORT", "log")),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		MailFrom:          getEnvOrDefault("MAIL_FROM", "Qure <no-reply@qure.local>"),
		MailRatePerMinute: getEnvIntOrDefault("MAIL_RATE_PER_MINUTE", 60),

		Env:                  getEnvOrDefault("ENV", "production"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects settings the service cannot start with. A missing
// JWT_SECRET is not one of them: the service starts and reports it.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.MailTransport {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp mail transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport))
	}

	if _, err := mail.ParseAddress(c.MailFrom); err != nil {
		errs = append(errs, fmt.Errorf("invalid MAIL_FROM: %w", err))
	}

	return errors.Join(errs...)
}

// ExposeErrors reports whether 500 responses may carry error details.
func (c Config) ExposeErrors() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
