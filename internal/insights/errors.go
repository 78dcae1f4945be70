package insights

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyResponse indicates the provider answered without any completion.
var ErrEmptyResponse = errors.New("provider returned no completion choices")

// ConfigurationError indicates the provider credential is missing or unusable
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ValidationError indicates the request body could not be decoded into a BusinessProfile
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s - %s", strings.Join(e.Fields, ", "), e.Reason)
}

// ProviderError wraps any failure raised while calling the generation provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Message returns the underlying failure text reported to callers.
func (e *ProviderError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
