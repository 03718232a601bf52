package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity provider (bearer tokens)
	AuthJWKSURL   string
	AuthJWTSecret string
	AuthIssuer    string

	// AI assistant (OpenAI-compatible chat completions)
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string
	AITimeout    time.Duration

	// Email (SendGrid)
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string

	// SMS (Twilio)
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Media (Cloudinary)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Reminders & notifications
	ReminderCron               string
	ReminderLookahead          time.Duration
	ReminderDedupeVaccinations bool
	NotificationTTL            time.Duration

	// Rate limits
	RateLimitMax        int
	RateLimitWindow     time.Duration
	AuthRateLimitMax    int
	AuthRateLimitWindow time.Duration
	AIRateLimitMax      int
	AIRateLimitWindow   time.Duration

	// Server
	Port        string
	APIVersion  string
	CORSOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "vaxtrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthIssuer:    getEnv("AUTH_ISSUER", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIAPIURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		AITimeout:    parseDuration(getEnv("AI_TIMEOUT", "30s"), 30*time.Second),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@vaxtrack.app"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "VaxTrack"),

		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		ReminderCron:               getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderLookahead:          parseDuration(getEnv("REMINDER_LOOKAHEAD", "72h"), 72*time.Hour),
		ReminderDedupeVaccinations: parseBool(getEnv("REMINDER_DEDUPE_VACCINATIONS", "false")),
		NotificationTTL:            parseDuration(getEnv("NOTIFICATION_TTL", "720h"), 720*time.Hour),

		RateLimitMax:        parseInt(getEnv("RATE_LIMIT_MAX", "100"), 100),
		RateLimitWindow:     parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
		AuthRateLimitMax:    parseInt(getEnv("AUTH_RATE_LIMIT_MAX", "5"), 5),
		AuthRateLimitWindow: parseDuration(getEnv("AUTH_RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
		AIRateLimitMax:      parseInt(getEnv("AI_RATE_LIMIT_MAX", "50"), 50),
		AIRateLimitWindow:   parseDuration(getEnv("AI_RATE_LIMIT_WINDOW", "1h"), time.Hour),

		Port:        getEnv("PORT", "5000"),
		APIVersion:  getEnv("API_VERSION", "v1"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// HasAuth reports whether bearer tokens can be verified.
func (c *Config) HasAuth() bool {
	return c.AuthJWKSURL != "" || c.AuthJWTSecret != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
