package linkedin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrConfiguration is returned when a confidential operation runs without a client secret.
	ErrConfiguration = errors.New("linkedin: client secret not configured")

	ErrTokenExchange           = errors.New("linkedin: token exchange failed")
	ErrTokenRefresh            = errors.New("linkedin: token refresh failed")
	ErrRateLimitExceeded       = errors.New("linkedin: rate limit exceeded")
	ErrReauthorizationRequired = errors.New("linkedin: token expired, please reconnect your account")
	ErrAPIRequest              = errors.New("linkedin: api request failed")

	ErrNoAccount = errors.New("linkedin: no authenticated account")
)

// Error represents a failed call to the LinkedIn OAuth or REST endpoints
type Error struct {
	Kind       error
	StatusCode int
	Status     string
	Message    string
	Endpoint   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": %d %s", e.StatusCode, e.Status)
	}

	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}

	if e.Endpoint != "" {
		fmt.Fprintf(&b, " (%s)", e.Endpoint)
	}

	return b.String()
}

// Unwrap exposes the error kind to errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}

// IsClientError returns true if the provider rejected the request
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the provider failed
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

// RateLimitError is returned once the retry budget for rate limited responses is spent
type RateLimitError struct {
	Attempts   int
	RetryAfter time.Duration
	Local      bool // The local quota rejected the call before reaching the provider
}

func (e *RateLimitError) Error() string {
	if e.Local {
		return fmt.Sprintf("%s: local quota exhausted, resets in %s", ErrRateLimitExceeded, e.RetryAfter)
	}

	return fmt.Sprintf("%s after %d attempts, provider resets in %s", ErrRateLimitExceeded, e.Attempts, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimitExceeded
}

func newStatusError(kind error, resp *http.Response, endpoint string) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Endpoint:   endpoint,
	}
}

// statusText strips the numeric code from a response status line.
func statusText(resp *http.Response) string {
	if resp == nil {
		return ""
	}

	if text, ok := strings.CutPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode)); ok {
		return text
	}

	if resp.Status != "" {
		return resp.Status
	}

	return http.StatusText(resp.StatusCode)
}

// IsReauthorizationRequired checks if the account must run the authorization flow again
func IsReauthorizationRequired(err error) bool {
	return errors.Is(err, ErrReauthorizationRequired)
}

// IsRateLimited checks if an error is due to rate limiting
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

// StatusCode returns the provider status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
