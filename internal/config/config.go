package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Environment string
	Port        string
	DatabaseURL string
	BaseURL     string
	StaticDir   string

	SessionSecret        string
	SessionSecretDefault bool
	SessionCookieName    string
	SessionTTL           time.Duration
	SessionPruneInterval time.Duration

	BcryptCost    int
	ResetTokenTTL time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeCurrency      string

	MailProvider       string
	SendGridAPIKey     string
	MailFrom           string
	MailFromName       string
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	ContactNotifyEmail string

	RedisURL           string
	AuthRateLimit      int
	AuthRateWindow     time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

// Production reports whether cookies must be marked Secure.
func (c Config) Production() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment, after merging a .env file
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:5000"), "/"),
		StaticDir:   os.Getenv("STATIC_DIR"),

		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "gw.sid"),
		SessionTTL:           getDuration("SESSION_TTL", 7*24*time.Hour),
		SessionPruneInterval: getDuration("SESSION_PRUNE_INTERVAL", 15*time.Minute),

		BcryptCost:    getInt("BCRYPT_COST", 12),
		ResetTokenTTL: getDuration("RESET_TOKEN_TTL", time.Hour),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeCurrency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "cad")),

		MailProvider:       strings.ToLower(getEnv("MAIL_PROVIDER", "log")),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		MailFrom:           os.Getenv("MAIL_FROM"),
		MailFromName:       getEnv("MAIL_FROM_NAME", "Grounded Warriors"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getInt("SMTP_PORT", 587),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		ContactNotifyEmail: os.Getenv("CONTACT_NOTIFY_EMAIL"),

		RedisURL:           os.Getenv("REDIS_URL"),
		AuthRateLimit:      getInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:     getDuration("AUTH_RATE_WINDOW", time.Minute),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", nil),
		TrustedProxies:     getList("TRUSTED_PROXIES", nil),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		cfg.SessionSecretDefault = true
	}

	switch cfg.MailProvider {
	case "sendgrid", "smtp", "log":
	default:
		return Config{}, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
