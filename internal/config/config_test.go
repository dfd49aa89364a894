package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "SESSION_TTL", "RESET_TOKEN_TTL", "BCRYPT_COST", "STRIPE_CURRENCY", "MAIL_PROVIDER", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/gw?sslmode=disable")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("BASE_URL", "https://groundedwarriors.ca/")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "https://groundedwarriors.ca", cfg.BaseURL)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, time.Hour, cfg.ResetTokenTTL)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, "cad", cfg.StripeCurrency)
	require.True(t, cfg.SessionSecretDefault)
	require.Len(t, cfg.SessionSecret, 64)
	require.False(t, cfg.Production())
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gw")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("AUTH_RATE_LIMIT", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Production())
	require.Equal(t, "s3cret", cfg.SessionSecret)
	require.False(t, cfg.SessionSecretDefault)
	require.Equal(t, 48*time.Hour, cfg.SessionTTL)
	require.Equal(t, 3, cfg.AuthRateLimit)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "smtp", cfg.MailProvider)
	require.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestLoadRejectsUnknownMailProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gw")
	t.Setenv("MAIL_PROVIDER", "pigeon")

	_, err := Load()
	require.Error(t, err)
}
