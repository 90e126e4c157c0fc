package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnsupportedProvider is returned for a provider id outside Providers
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrMissingCredential is returned when the chosen provider has no API key
	ErrMissingCredential = errors.New("missing API key")

	// ErrInvalidRequest is returned for a conversation or config the provider cannot accept
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRejected marks a provider reply that blames the request itself, such as an
	// unknown model. It says nothing about the provider's health.
	ErrRejected = errors.New("request rejected by provider")

	// ErrNoResponse marks a call that reached a provider but produced no answer
	ErrNoResponse = errors.New("no response from provider")

	// ErrEmptyResponse is returned by adapters when the provider reply carries no text
	ErrEmptyResponse = errors.New("empty response")
)

// ConfigError reports a call rejected before any network attempt: an unknown
// provider, a missing API key or an invalid conversation.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError reports a remote call that was attempted and failed, or returned
// nothing usable. It matches ErrNoResponse under errors.Is.
type TransportError struct {
	Provider Provider
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Provider, ErrNoResponse, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrNoResponse
}

// RejectedStatus reports whether an HTTP status from a provider is a 4xx caused by
// the request. 429 is excluded since it reflects provider load.
func RejectedStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

// IsConfigError reports whether err was raised before contacting a provider
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
