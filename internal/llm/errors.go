package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies why a completion call did not produce usable output.
type FailureKind string

// Failure kinds reported by providers and by Decode.
const (
	FailureRateLimited   FailureKind = "rate_limited"
	FailureQuotaExceeded FailureKind = "quota_exceeded"
	FailureUnavailable   FailureKind = "unavailable"
	FailureMalformed     FailureKind = "malformed"
)

// CompletionError is returned by every Client implementation when a call fails.
type CompletionError struct {
	Kind    FailureKind
	Model   string
	Message string
	Cause   error
}

func (e *CompletionError) Error() string {
	msg := fmt.Sprintf("completion %s", e.Kind)
	if e.Model != "" {
		msg += fmt.Sprintf(" (model %s)", e.Model)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// DecodeError reports a response that could not be turned into the expected structure.
type DecodeError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode %s: %s", e.Schema, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// KindOf returns the failure kind carried by err, or "" when err is not a completion failure.
func KindOf(err error) FailureKind {
	if err == nil {
		return ""
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return FailureMalformed
	}
	var completionErr *CompletionError
	if errors.As(err, &completionErr) {
		return completionErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind FailureKind) bool {
	return KindOf(err) == kind
}

// newCompletionError wraps a provider error with its classification.
func newCompletionError(model string, kind FailureKind, cause error) *CompletionError {
	return &CompletionError{Kind: kind, Model: model, Cause: cause}
}

// classifyByStatus maps an HTTP status code (and optional provider error code) to a FailureKind.
func classifyByStatus(status int, code string) FailureKind {
	switch {
	case status == 402:
		return FailureQuotaExceeded
	case status == 429 && strings.Contains(strings.ToLower(code), "quota"):
		return FailureQuotaExceeded
	case status == 429:
		return FailureRateLimited
	default:
		return FailureUnavailable
	}
}

// classifyByMessage is the last resort for errors that carry no structured status.
func classifyByMessage(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureUnavailable
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "402") || strings.Contains(msg, "billing"):
		return FailureQuotaExceeded
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted"):
		return FailureRateLimited
	default:
		return FailureUnavailable
	}
}
