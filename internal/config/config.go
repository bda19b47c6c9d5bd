package config

import (
	"os"
	"time"
)

type Config struct {
	// NATS configuration
	NatsURL         string
	NatsChatSubject string
	NatsTimeout     time.Duration

	// PostgreSQL record store; empty means run on the in-memory store
	DatabaseURL string

	// Redis transcript store
	RedisURL   string
	SessionTTL time.Duration

	// Gemini configuration
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Service configuration
	ServiceName string
	AppEnv      string
}

func Load() *Config {
	return &Config{
		// NATS settings
		NatsURL:         getEnv("NATS_URL", "nats://localhost:4222"),
		NatsChatSubject: getEnv("NATS_CHAT_SUBJECT", "fabbrica.chat"),
		NatsTimeout:     getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Store settings
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:  getDurationEnv("SESSION_TTL", 30*time.Minute),

		// Gemini settings
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout: getDurationEnv("GEMINI_TIMEOUT", 30*time.Second),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "fabbrica-intent"),
		AppEnv:      getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
