// Package insights turns a business profile into growth insights by prompting an LLM provider.
package insights

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/config"
	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

// Service generates insights for business profiles.
// A Service built without a provider answers every call with a *ConfigurationError.
type Service struct {
	provider Provider
	logger   *logrus.Entry
}

func NewService(provider Provider, logger *logrus.Entry) *Service {
	if logger == nil {
		logger = logrus.WithField("component", "insights")
	}
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// NewServiceFromConfig builds the provider named in cfg.
// A missing credential is not fatal here: the service is returned without a
// provider and reports a *ConfigurationError on every request.
func NewServiceFromConfig(ctx context.Context, cfg config.LLMConfig, logger *logrus.Entry) (*Service, error) {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		var configErr *ConfigurationError
		if !errors.As(err, &configErr) {
			return nil, err
		}
		if logger != nil {
			logger.WithError(err).Warn("Insight provider not configured")
		}
		return NewService(nil, logger), nil
	}
	return NewService(provider, logger), nil
}

// CheckConfig reports whether a provider credential was configured.
func (s *Service) CheckConfig() error {
	if s.provider == nil {
		return &ConfigurationError{Reason: "no provider API key configured"}
	}
	return nil
}

// Generate asks the provider for insights on profile and returns the first completion verbatim.
func (s *Service) Generate(ctx context.Context, profile *models.BusinessProfile) (string, error) {
	if err := s.CheckConfig(); err != nil {
		return "", err
	}

	req := BuildRequest(profile)

	log := s.logger.WithField("provider", s.provider.Name())
	log.WithField("prompt_chars", len(req.User)).Info("Making provider API call")

	text, err := s.provider.Complete(ctx, req)
	if err != nil {
		return "", &ProviderError{Provider: s.provider.Name(), Err: err}
	}

	log.WithField("response_chars", len(text)).Debug("Provider call succeeded")
	return text, nil
}

// Close releases the provider, if any.
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
