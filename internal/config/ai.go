package config

import (
	"strings"
	"time"
)

// DefaultGeminiModels is tried in order until one answers.
var DefaultGeminiModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
	"gemini-pro",
}

// AIConfig holds companion-chat model settings
type AIConfig struct {
	APIKey    string   `json:"-"` // Never serialize
	Models    []string `json:"models"`
	TimeoutMS int      `json:"timeoutMs"`
}

// DefaultAIConfig reads GEMINI_API_KEY, GEMINI_MODELS and GEMINI_TIMEOUT_MS.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:    getEnv("GEMINI_API_KEY", ""),
		Models:    parseModels(getEnv("GEMINI_MODELS", "")),
		TimeoutMS: getInt("GEMINI_TIMEOUT_MS", 15000),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout is the per-call deadline for one model attempt.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func parseModels(v string) []string {
	var models []string
	for _, m := range strings.Split(v, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return append([]string(nil), DefaultGeminiModels...)
	}
	return models
}
