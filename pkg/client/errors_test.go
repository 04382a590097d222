package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorClass
	}{
		{200, ""},
		{304, ""},
		{400, ErrorClassClient},
		{401, ErrorClassAuth},
		{403, ErrorClassAuth},
		{404, ErrorClassClient},
		{429, ErrorClassRateLimit},
		{500, ErrorClassServer},
		{503, ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	if err := statusError(EndpointHeroes, 200); err != nil {
		t.Errorf("statusError(200) = %v, want nil", err)
	}
	if err := statusError(EndpointHeroes, 403); !errors.Is(err, ErrAuthentication) {
		t.Errorf("statusError(403) = %v, want ErrAuthentication", err)
	}
	if err := statusError(EndpointHeroes, 503); !errors.Is(err, ErrUnavailable) {
		t.Errorf("statusError(503) = %v, want ErrUnavailable", err)
	}
	if err := statusError(EndpointHeroes, 500); errors.Is(err, ErrUnavailable) {
		t.Error("statusError(500) should not be ErrUnavailable")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"auth", statusError("x", 403), false},
		{"client", statusError("x", 404), false},
		{"server", statusError("x", 500), true},
		{"unavailable", statusError("x", 503), true},
		{"rate limit", statusError("x", 429), true},
		{"transport", fmt.Errorf("%w: dial tcp", ErrTransport), true},
		{"wrapped server", fmt.Errorf("fetch page: %w", statusError("x", 502)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.expected {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "error with wrapped error",
			apiError: &APIError{
				StatusCode: 503,
				Class:      ErrorClassServer,
				Endpoint:   EndpointMatchHistory,
				Message:    "Service Unavailable",
				Err:        ErrUnavailable,
			},
			expected: "dota2 api server error (status 503) on IDOTA2Match_570/GetMatchHistory/V001/: Service Unavailable: service unavailable",
		},
		{
			name: "error without wrapped error",
			apiError: &APIError{
				StatusCode: 404,
				Class:      ErrorClassClient,
				Endpoint:   EndpointHeroes,
				Message:    "Not Found",
			},
			expected: "dota2 api client error (status 404) on IEconDOTA2_570/GetHeroes/V001/: Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	wrapped := errors.New("wrapped error")
	apiErr := &APIError{Class: ErrorClassServer, Err: wrapped}

	if !errors.Is(apiErr, wrapped) {
		t.Error("errors.Is should find wrapped error")
	}

	var target *APIError
	if !errors.As(fmt.Errorf("outer: %w", apiErr), &target) {
		t.Error("errors.As should find *APIError")
	}
}
