package llm

import (
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// FailureKind groups provider failures into the classes the CLI
// reports distinctly.
type FailureKind string

const (
	FailureAuth         FailureKind = "auth"
	FailureRateLimit    FailureKind = "rate_limit"
	FailureConnectivity FailureKind = "connectivity"
	FailureProvider     FailureKind = "provider"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitAuth     = 1
	ExitUsage    = 2
	ExitProvider = 3
)

// ProviderError carries a classified provider failure.
type ProviderError struct {
	Kind FailureKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// wrapProviderError classifies an SDK error. Typed SDK errors are
// inspected first; anything else is classified by message content,
// the same way transient transport failures surface.
func wrapProviderError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		kind := FailureProvider
		switch apiErr.Type {
		case "authentication_error", "permission_error":
			kind = FailureAuth
		case "rate_limit_error":
			kind = FailureRateLimit
		case "overloaded_error":
			kind = FailureConnectivity
		}
		return &ProviderError{Kind: kind, Err: err}
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		kind := FailureProvider
		switch {
		case reqErr.StatusCode == 401 || reqErr.StatusCode == 403:
			kind = FailureAuth
		case reqErr.StatusCode == 429:
			kind = FailureRateLimit
		case reqErr.StatusCode >= 500:
			kind = FailureConnectivity
		}
		return &ProviderError{Kind: kind, Err: err}
	}

	msg := strings.ToLower(err.Error())
	kind := FailureProvider
	switch {
	case strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "authentication"):
		kind = FailureAuth
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		kind = FailureRateLimit
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network"):
		kind = FailureConnectivity
	}
	return &ProviderError{Kind: kind, Err: err}
}

// Classify returns the failure kind for an error chain, defaulting to
// FailureProvider for unrecognized errors.
func Classify(err error) FailureKind {
	if errors.Is(err, ErrMissingAPIKey) {
		return FailureAuth
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return FailureProvider
}

// ExitCode maps an error chain to the process exit code contract.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if Classify(err) == FailureAuth {
		return ExitAuth
	}
	return ExitProvider
}

// Describe renders a short human-readable explanation for a classified
// failure, suitable for stderr.
func Describe(err error) string {
	switch Classify(err) {
	case FailureAuth:
		return "Authentication failed. Check that ANTHROPIC_API_KEY is set and valid."
	case FailureRateLimit:
		return "Rate limited by the API. Wait a moment and try again."
	case FailureConnectivity:
		return "Could not reach the API. Check your network connection."
	default:
		return fmt.Sprintf("The API request failed: %v", err)
	}
}
