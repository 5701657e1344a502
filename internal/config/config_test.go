package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MONGO_DB", "REDIS_URI", "JWT_SECRET", "SECURE_COOKIES", "GEMINI_API_KEY", "GEMINI_MODELS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "mindbridge", cfg.MongoDB)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.False(t, cfg.SecureCookies)
	assert.True(t, cfg.UsingDefaultSecret())
	assert.False(t, cfg.AI.IsEnabled())
	assert.Equal(t, DefaultGeminiModels, cfg.AI.Models)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODELS", " gemini-a , ,gemini-b")
	t.Setenv("GEMINI_TIMEOUT_MS", "2500")

	cfg := FromEnv()
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.True(t, cfg.SecureCookies)
	assert.False(t, cfg.UsingDefaultSecret())
	assert.True(t, cfg.AI.IsEnabled())
	assert.Equal(t, []string{"gemini-a", "gemini-b"}, cfg.AI.Models)
	assert.Equal(t, 2500*time.Millisecond, cfg.AI.Timeout())
}

func TestGetBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SECURE_COOKIES", "maybe")
	assert.False(t, getBool("SECURE_COOKIES", false))
}
