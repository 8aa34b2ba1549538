package config

import (
	"os"
	"strconv"
	"strings"
)

const defaultCompletionsURL = "https://openrouter.ai/api/v1/chat/completions"

type Config struct {
	Port              int
	LogLevel          string
	OpenRouterAPIKey  string
	OpenRouterURL     string
	ModelFast         string
	ModelReport       string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	SessionTTLMinutes int
	SessionLimit      int
	AllowedOrigins    []string
}

func Load() Config {
	return Config{
		Port:              envInt("REHEARSE_PORT", 8800),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		OpenRouterAPIKey:  envStr("OPENROUTER_API_KEY", ""),
		OpenRouterURL:     envStr("OPENROUTER_URL", defaultCompletionsURL),
		ModelFast:         envStr("OPENROUTER_MODEL_FAST", "openai/gpt-5-mini"),
		ModelReport:       envStr("OPENROUTER_MODEL_REPORT", "anthropic/claude-3.5-sonnet"),
		ElevenLabsAPIKey:  envStr("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: envStr("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		SessionTTLMinutes: envInt("SESSION_TTL_MINUTES", 120),
		SessionLimit:      envInt("SESSION_LIMIT", 1000),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"https://rehearse-nu.vercel.app",
		}),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
