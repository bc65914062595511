// Package errs defines the error taxonomy shared by the HTTP handlers
// and the ingestion pipeline. Handlers map these to status codes; the
// pipeline worker converts them into a terminal job status instead of
// letting them escape the background run.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a missing document, job or template. Never retried.
var ErrNotFound = errors.New("not found")

// ErrPermissionDenied marks a cross-organization access attempt.
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError reports a malformed request payload with field detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ContentInvalid reports converted content that failed validation.
// Document creation may still proceed, but processing is blocked.
type ContentInvalid struct {
	Reason   string
	Actual   int
	Expected int
}

func (e *ContentInvalid) Error() string {
	if e.Expected > 0 {
		return fmt.Sprintf("invalid content: %s (got %d, need %d)", e.Reason, e.Actual, e.Expected)
	}
	return fmt.Sprintf("invalid content: %s", e.Reason)
}

// ProviderError wraps a failure from an external embedding or
// generation backend. Eligible for explicit retry.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// DimensionMismatch reports an embedding vector whose length does not
// match the expected dimension for its model. Treated as a data
// integrity failure; the vector is never stored.
type DimensionMismatch struct {
	Model    string
	Expected int
	Actual   int
}

func (e *DimensionMismatch) Error() string {
	return fmt.Sprintf("embedding dimension mismatch for model %q: expected %d, got %d", e.Model, e.Expected, e.Actual)
}

// HTTPStatus maps an error from the taxonomy to an HTTP status code.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		content    *ContentInvalid
		provider   *ProviderError
		dimension  *DimensionMismatch
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &content):
		return http.StatusUnprocessableEntity
	case errors.As(err, &provider):
		return http.StatusBadGateway
	case errors.As(err, &dimension):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
