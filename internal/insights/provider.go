package insights

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/business-insights-agent/internal/config"
)

// Provider is a chat-completion backend that turns a ChatRequest into generated text
type Provider interface {
	// Complete returns the content of the first completion
	Complete(ctx context.Context, req ChatRequest) (string, error)
	// Name identifies the provider in logs and errors
	Name() string
	// Close releases any resources held by the provider
	Close() error
}

// NewProvider creates the provider selected by cfg.
// A missing credential or unknown provider yields a *ConfigurationError.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigurationError{Reason: config.APIKeyEnv(cfg.Provider) + " is not set"}
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unsupported provider %q", cfg.Provider)}
	}
}
