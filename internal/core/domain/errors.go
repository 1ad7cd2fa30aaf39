package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested book, artifact or session does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates an assistant query with no content.
	// It is rejected before any outbound call is made.
	ErrEmptyQuery = errors.New("empty query")

	// ErrForbidden indicates the request identity is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrLLMUnavailable indicates no language model client is
	// configured, so assistant features are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// ValidationError is a recoverable input failure with a specific,
// caller-visible reason. It unwraps to ErrInvalidInput.
type ValidationError struct {
	// Field names the offending input (e.g. "title", "cover").
	Field string

	// Reason is a short machine-readable explanation
	// (e.g. "required", "too_large", "invalid_content").
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold for all
// validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// StorageError wraps a filesystem or database failure. It is surfaced
// to callers as a generic failure; the wrapped detail is for logs.
type StorageError struct {
	// Op names the failing operation (e.g. "catalog insert").
	Op string

	// Err is the underlying infrastructure error.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ProviderError is an opaque language-model backend failure. Provider
// subtypes (auth, rate-limit, malformed response) are deliberately not
// distinguished to callers so the contract survives backend changes;
// only timeouts are flagged because callers time-bound the request.
type ProviderError struct {
	// Timeout is true when the provider call exceeded its deadline.
	Timeout bool

	// Detail carries the backend-specific error for server-side logs.
	// It is never shown to end users.
	Detail string
}

func (e *ProviderError) Error() string {
	if e.Timeout {
		return "language model request timed out"
	}
	return "language model request failed"
}
