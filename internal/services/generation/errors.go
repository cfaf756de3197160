package generation

import (
	"strings"

	"github.com/socialchef/pantry/internal/errors"
)

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	Type     string // "rate_limit", "credit_exhausted", "server_error", "client_error", "unknown"
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

var (
	rateLimitPatterns   = []string{"status 429", "http 429", "rate limit", "too many requests", "resource_exhausted"}
	creditPatterns      = []string{"status 402", "http 402", "insufficient credit", "credit exhausted", "billing", "quota"}
	serverErrorPatterns = []string{"status 5", "http 5", "server error", "internal error", "unavailable"}
	clientErrorPatterns = []string{"status 4", "http 4", "bad request", "unauthorized", "forbidden", "invalid_argument", "permission_denied"}
)

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(kind string) *ProviderError {
		return &ProviderError{Type: kind, Message: msg, Provider: provider}
	}

	if containsAny(msg, rateLimitPatterns) {
		return classified("rate_limit")
	}
	if containsAny(msg, creditPatterns) {
		return classified("credit_exhausted")
	}

	if appErr, ok := errors.As(err); ok {
		if appErr.StatusCode >= 500 {
			return classified("server_error")
		}
		if appErr.StatusCode >= 400 {
			return classified("client_error")
		}
	}

	if containsAny(msg, serverErrorPatterns) {
		return classified("server_error")
	}
	if containsAny(msg, clientErrorPatterns) {
		return classified("client_error")
	}

	return classified("unknown")
}

// IsRetryableError returns true if the error is retryable (rate limit, credit exhausted, or server error)
func IsRetryableError(err error) bool {
	providerErr := ClassifyError(err, "")
	if providerErr == nil {
		return false
	}

	switch providerErr.Type {
	case "rate_limit", "credit_exhausted", "server_error":
		return true
	default:
		return false
	}
}

// containsAny reports whether s contains any of the lower-case patterns, ignoring case.
func containsAny(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
