package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"JWT_SECRET", "AUTH_ISSUER", "RESET_TOKEN_TTL", "AUTH_DATABASE_DRIVER",
		"MAIL_TRANSPORT", "MAIL_FROM", "ENV", "PORT", "HOUSEKEEPING_INTERVAL",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, "qure-auth", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.ResetTokenTTL)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "log", cfg.MailTransport)
	require.Equal(t, 5000, cfg.Port)
	require.False(t, cfg.ExposeErrors())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HOUSEKEEPING_INTERVAL", "15") // bare minutes
	t.Setenv("AUTH_DATABASE_DRIVER", "Postgres")
	t.Setenv("AUTH_DATABASE_URL", "postgres://qure@localhost/qure?sslmode=disable")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ENV", "development")

	cfg := LoadConfig()
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 5000, cfg.Port)
	require.True(t, cfg.ExposeErrors())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		DatabaseDriver: "postgres",
		MailTransport:  "carrier-pigeon",
		MailFrom:       "not an address",
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, "AUTH_DATABASE_URL")
	require.ErrorContains(t, err, "MAIL_TRANSPORT")
	require.ErrorContains(t, err, "MAIL_FROM")
}
