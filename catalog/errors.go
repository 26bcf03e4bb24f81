package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// maxBodyPreview bounds how much of a response body ends up in an error message.
const maxBodyPreview = 200

// Common errors
var (
	// ErrValidation is matched by every ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid catalog client configuration")
	// ErrUnknownField indicates a draft field name that does not exist
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError reports a draft field that failed client-side validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StatusError represents a non-success response from the catalog API
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// FormatError indicates the response body was not the structured data expected,
// for example an HTML error page served where JSON was expected.
type FormatError struct {
	Path        string
	ContentType string
	Body        string
	Err         error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("unexpected response format from %s (content type %q)", e.Path, e.ContentType)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// truncate shortens a response body for inclusion in an error message.
func truncate(body []byte) string {
	if len(body) <= maxBodyPreview {
		return string(body)
	}
	cut := maxBodyPreview
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
