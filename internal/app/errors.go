package app

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// Sentinel errors for the generation-client boundary. Callers check them with
// errors.Is to classify a halted run.
var (
	ErrCredentialsMissing = errors.New("gemini api key is missing")
	ErrAuthFailed         = errors.New("gemini rejected the api key")
	ErrRunActive          = errors.New("a run is already active")
	ErrEmptyInputs        = errors.New("title and brief must both be set")
	ErrEmptyResult        = errors.New("model returned an empty result")
)

// FailureKind classifies why a run halted. The kind drives the user-visible
// message; the underlying error keeps the detail.
type FailureKind string

const (
	FailureCredentialsMissing FailureKind = "credentials_missing"
	FailureAuth               FailureKind = "auth_failed"
	FailureNetwork            FailureKind = "network_error"
	FailureUnknown            FailureKind = "unknown"
)

// Classify maps a stage-execution error onto the failure taxonomy.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCredentialsMissing):
		return FailureCredentialsMissing
	case errors.Is(err, ErrAuthFailed):
		return FailureAuth
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return FailureNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureNetwork
	}
	return FailureUnknown
}

// Message returns the human-readable explanation shown when a run halts.
func (k FailureKind) Message() string {
	switch k {
	case FailureCredentialsMissing:
		return "The Gemini API key is not configured. Set APP_GEMINI_API_KEY (or gemini_api_key in config.yml) and start a new run."
	case FailureAuth:
		return "The Gemini API rejected the configured key. Check APP_GEMINI_API_KEY and start a new run."
	case FailureNetwork:
		return "Could not reach the Gemini API. Check your connection and start a new run."
	default:
		return "Content generation failed. Start a new run to retry."
	}
}
