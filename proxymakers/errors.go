package proxymakers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidToken indicates a missing token or a 401 from the API
	ErrInvalidToken = errors.New("proxymakers: please provide a valid token")
	// ErrUndecodedPayload indicates the response body was not a JSON envelope
	ErrUndecodedPayload = errors.New("proxymakers: response payload is not a JSON envelope")
	// ErrMissingOrderID indicates an order operation was called without an id
	ErrMissingOrderID = errors.New("proxymakers: order id is required")
)

// APIError represents a non-401 HTTP error returned by the ProxyMakers API
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if len(msg) > 512 {
		msg = msg[:512]
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("proxymakers API error: %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, msg)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsClientError reports a 4xx status
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx status
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// AsAPIError extracts an *APIError from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ValidationError lists parameter constraint violations found by Validate.
type ValidationError struct {
	Fields []FieldViolation
}

// FieldViolation is a single failed constraint.
type FieldViolation struct {
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: failed %q (got %q)", f.Field, f.Rule, f.Value))
	}
	return "proxymakers: invalid parameters: " + strings.Join(parts, "; ")
}
