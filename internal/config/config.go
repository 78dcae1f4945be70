// Package config loads the agent's configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default models per provider.
const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.5-flash-lite"
)

// ErrMissingAPIKey is returned by Validate when the selected provider has no credential.
var ErrMissingAPIKey = errors.New("provider API key is not configured")

// Config holds the configuration for the insights agent
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	provider := strings.ToLower(GetStringEnv("LLM_PROVIDER", ProviderOpenAI))

	return &Config{
		Server: ServerConfig{
			Port:    GetStringEnv("PORT", "8080"),
			GinMode: GetStringEnv("GIN_MODE", "release"),
		},
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   os.Getenv(APIKeyEnv(provider)),
			Model:    GetStringEnv("LLM_MODEL", DefaultModel(provider)),
			BaseURL:  GetStringEnv("LLM_BASE_URL", ""),
		},
		Log: LogConfig{
			Level:  GetStringEnv("LOG_LEVEL", "info"),
			Format: GetStringEnv("LOG_FORMAT", "text"),
		},
	}
}

// Validate reports configuration that would make every insight request fail.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("config error: unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("config error: %s: %w", APIKeyEnv(c.LLM.Provider), ErrMissingAPIKey)
	}
	return nil
}

// APIKeyEnv returns the environment variable holding the credential for provider.
func APIKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// DefaultModel returns the model used when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	if provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
