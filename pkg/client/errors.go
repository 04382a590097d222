package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the client.
var (
	// ErrConfiguration is returned by New for unusable configuration.
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrMissingAPIKey is returned when neither Config.APIKey nor D2_API_KEY is set.
	ErrMissingAPIKey = fmt.Errorf("%w: api key not provided and %s not set", ErrConfiguration, APIKeyEnv)

	// ErrAuthentication indicates the Web API rejected the API key.
	ErrAuthentication = errors.New("api key rejected")

	// ErrUnavailable indicates the Web API is temporarily unavailable (503).
	ErrUnavailable = errors.New("service unavailable")

	// ErrTransport indicates a network-level failure before any HTTP status.
	ErrTransport = errors.New("transport failure")

	// ErrInvalidResponse indicates a body that is not a Web API envelope.
	ErrInvalidResponse = errors.New("invalid response from Web API")
)

// ErrorClass represents a classification of Web API failures.
type ErrorClass string

const (
	// ErrorClassAuth represents 401/403 credential rejections.
	ErrorClassAuth ErrorClass = "auth"

	// ErrorClassClient represents other 4xx errors and API-level error statuses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 responses.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents transport faults.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError represents a failed Web API call with additional context.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dota2 api %s error (status %d) on %s: %s: %v",
			e.Class, e.StatusCode, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("dota2 api %s error (status %d) on %s: %s",
		e.Class, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status to an error class. 2xx and 3xx map to "".
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorClassAuth
	case status == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// statusError builds the APIError for a non-success status.
func statusError(endpoint string, status int) error {
	class := classifyStatus(status)
	if class == "" {
		return nil
	}

	apiErr := &APIError{
		StatusCode: status,
		Class:      class,
		Endpoint:   endpoint,
		Message:    http.StatusText(status),
	}
	switch {
	case class == ErrorClassAuth:
		apiErr.Err = ErrAuthentication
	case status == http.StatusServiceUnavailable:
		apiErr.Err = ErrUnavailable
	}
	return apiErr
}

// ClassOf returns the error class carried by err, or "" when unknown.
func ClassOf(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Class
	}
	if errors.Is(err, ErrTransport) {
		return ErrorClassNetwork
	}
	return ""
}

// IsTransient reports whether err is worth retrying: server errors,
// rate limiting and transport faults.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch ClassOf(err) {
	case ErrorClassServer, ErrorClassRateLimit, ErrorClassNetwork:
		return true
	default:
		return false
	}
}
