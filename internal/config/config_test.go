package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CONTACT_RATE_LIMIT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, 10*time.Minute, cfg.ContactDedupeWindow)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("THEME_TTL_DAYS", "30")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 30*24*time.Hour, cfg.ThemeTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "visitor:abc:theme", CacheKey.VisitorThemeKey("abc"))
	assert.Equal(t, "contact:dedupe:ff", CacheKey.ContactDedupeKey("ff"))
}
