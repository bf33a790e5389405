// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs to run
type Config struct {
	Port string

	GeminiAPIKey string

	// Model names for the downstream Gemini calls
	ProModel   string
	FlashModel string
	LiveModel  string

	// Voice session defaults
	VoiceName         string
	SystemInstruction string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultPort       = "8080"
	defaultProModel   = "gemini-3-pro-preview"
	defaultFlashModel = "gemini-3-flash-preview"
	defaultLiveModel  = "gemini-2.5-flash-native-audio-preview-09-2025"
	defaultVoice      = "Zephyr"

	defaultSystemInstruction = "You are a professional legal consultant. " +
		"Provide quick, accurate verbal briefings on legal topics. Be concise and authoritative."
)

// Load builds the configuration from environment variables, applying defaults
// for everything except the API key.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		ProModel:          getEnv("GEMINI_PRO_MODEL", defaultProModel),
		FlashModel:        getEnv("GEMINI_FLASH_MODEL", defaultFlashModel),
		LiveModel:         getEnv("GEMINI_LIVE_MODEL", defaultLiveModel),
		VoiceName:         getEnv("GEMINI_VOICE_NAME", defaultVoice),
		SystemInstruction: getEnv("CONSULTATION_SYSTEM_INSTRUCTION", defaultSystemInstruction),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have no usable default
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
