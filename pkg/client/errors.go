package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrThrottled is returned when a request is blocked because PokeAPI asked us to back off.
	ErrThrottled = errors.New("request blocked: upstream throttling active")
)

// APIError is returned for any unsuccessful PokeAPI request: a non-2xx
// response, or a transport failure (StatusCode 0, ErrorClassNetwork).
type APIError struct {
	StatusCode int
	StatusText string
	URL        string
	ErrorClass ErrorClass
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s error: %v", e.URL, e.ErrorClass, e.Err)
	}
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, e.StatusText)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// newStatusError builds an APIError from an unsuccessful response.
func newStatusError(resp *http.Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		URL:        resp.Request.URL.String(),
		ErrorClass: classifyStatus(resp.StatusCode),
	}
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// IsNotFound reports whether err is a 404 from PokeAPI, which is how an
// unknown id or name surfaces.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassClient:
		// 4xx will not change on retry (unknown id/name)
		return false
	case ErrorClassServer:
		return true
	case ErrorClassRateLimit:
		return true
	case ErrorClassNetwork:
		return true
	default:
		return false
	}
}
