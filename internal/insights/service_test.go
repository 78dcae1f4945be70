package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/business-insights-agent/internal/config"
	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger.WithField("test", "insights")
}

func TestService_GenerateReturnsCompletionVerbatim(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.MatchedBy(func(req ChatRequest) bool {
		return req.System == SystemInstruction &&
			strings.Contains(req.User, "Business: Acme") &&
			req.Temperature == Temperature &&
			req.MaxTokens == MaxOutputTokens
	})).Return("  ## Insights\n", nil)

	svc := NewService(provider, testLogger())
	text, err := svc.Generate(context.Background(), &models.BusinessProfile{BusinessName: "Acme"})

	require.NoError(t, err)
	assert.Equal(t, "  ## Insights\n", text)
	provider.AssertExpectations(t)
}

func TestService_GenerateWrapsProviderFailure(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limit exceeded"))

	svc := NewService(provider, testLogger())
	_, err := svc.Generate(context.Background(), &models.BusinessProfile{})

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "mock", providerErr.Provider)
	assert.Equal(t, "rate limit exceeded", providerErr.Message())
}

func TestService_GenerateEmptyResponseIsProviderError(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).Return("", ErrEmptyResponse)

	svc := NewService(provider, testLogger())
	_, err := svc.Generate(context.Background(), &models.BusinessProfile{})

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestService_WithoutProvider(t *testing.T) {
	svc := NewService(nil, testLogger())

	var configErr *ConfigurationError
	assert.ErrorAs(t, svc.CheckConfig(), &configErr)

	_, err := svc.Generate(context.Background(), &models.BusinessProfile{})
	assert.ErrorAs(t, err, &configErr)
	assert.NoError(t, svc.Close())
}

func TestService_CloseClosesProvider(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Close").Return(nil)

	require.NoError(t, NewService(provider, testLogger()).Close())
	provider.AssertExpectations(t)
}

func TestNewServiceFromConfig_MissingKey(t *testing.T) {
	svc, err := NewServiceFromConfig(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}, testLogger())
	require.NoError(t, err)

	var configErr *ConfigurationError
	assert.ErrorAs(t, svc.CheckConfig(), &configErr)
}

func TestNewServiceFromConfig_OpenAI(t *testing.T) {
	svc, err := NewServiceFromConfig(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk-fake"}, testLogger())
	require.NoError(t, err)
	assert.NoError(t, svc.CheckConfig())
}

func TestService_GenerateLogsProviderCall(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).Return("ok", nil)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := NewService(provider, logger.WithField("test", "insights")).
		Generate(context.Background(), &models.BusinessProfile{BusinessName: "Acme"})
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "Making provider API call", entries[0].Message)
	assert.Equal(t, "mock", entries[0].Data["provider"])
	assert.Positive(t, entries[0].Data["prompt_chars"])
	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
	assert.Equal(t, "Provider call succeeded", entries[1].Message)
}

func TestService_GenerateFailureSkipsSuccessLog(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom"))

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := NewService(provider, logger.WithField("test", "insights")).
		Generate(context.Background(), &models.BusinessProfile{})
	require.Error(t, err)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "Making provider API call", hook.LastEntry().Message)
}

func TestNewServiceFromConfig_MissingKeyIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()

	_, err := NewServiceFromConfig(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}, logger.WithField("test", "insights"))
	require.NoError(t, err)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Insight provider not configured", hook.LastEntry().Message)
}
