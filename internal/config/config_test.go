package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REMINDER_LOOKAHEAD", "")
	t.Setenv("REMINDER_DEDUPE_VACCINATIONS", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg := Load()

	assert.Equal(t, "0 9 * * *", cfg.ReminderCron)
	assert.Equal(t, 72*time.Hour, cfg.ReminderLookahead)
	assert.False(t, cfg.ReminderDedupeVaccinations)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, "v1", cfg.APIVersion)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REMINDER_LOOKAHEAD", "48h")
	t.Setenv("REMINDER_DEDUPE_VACCINATIONS", "true")
	t.Setenv("AI_RATE_LIMIT_MAX", "7")

	cfg := Load()

	assert.Equal(t, 48*time.Hour, cfg.ReminderLookahead)
	assert.True(t, cfg.ReminderDedupeVaccinations)
	assert.Equal(t, 7, cfg.AIRateLimitMax)
}

func TestParseFallbacks(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 5, parseInt("-3", 5))
	assert.Equal(t, 5, parseInt("x", 5))
	assert.False(t, parseBool("nope"))
}

func TestHasAuth(t *testing.T) {
	assert.False(t, (&Config{}).HasAuth())
	assert.True(t, (&Config{AuthJWTSecret: "s"}).HasAuth())
	assert.True(t, (&Config{AuthJWKSURL: "https://idp/.well-known/jwks.json"}).HasAuth())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
