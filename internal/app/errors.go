package app

import (
	"errors"
	"fmt"
	"time"
)

// InvalidRequestError is special error type returned when any request params are invalid.
// It's detected locally, before any upstream call is made.
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// NotFoundError is returned when requested account doesn't exist upstream.
type NotFoundError string

// Error implements error interface
func (e NotFoundError) Error() string {
	return string(e)
}

// IsNotFound tells that this error is 'not found'.
// Returns always true.
func (NotFoundError) IsNotFound() bool {
	return true
}

// UpstreamUnavailableError is returned when upstream api reports server side error.
type UpstreamUnavailableError string

// Error implements error interface
func (e UpstreamUnavailableError) Error() string {
	return string(e)
}

// IsUpstreamUnavailable tells that this error is 'upstream unavailable'.
// Returns always true.
func (UpstreamUnavailableError) IsUpstreamUnavailable() bool {
	return true
}

// RateLimitedError is returned when upstream api throttles requests.
// ResetAt is zero when upstream didn't tell when the limit resets.
type RateLimitedError struct {
	Message string
	ResetAt time.Time
}

// Error implements error interface
func (e RateLimitedError) Error() string {
	return fmt.Sprintf("%s, resets at %s", e.Message, e.ResetTime())
}

// ResetTime returns human readable reset time hint.
func (e RateLimitedError) ResetTime() string {
	if e.ResetAt.IsZero() {
		return "unknown"
	}
	return e.ResetAt.UTC().Format("15:04:05 MST")
}

// IsRateLimited tells that this error is 'rate limited'.
// Returns always true.
func (RateLimitedError) IsRateLimited() bool {
	return true
}

// FetchFailedError wraps any other transport or decoding failure.
type FetchFailedError struct {
	Op  string
	Err error
}

// Error implements error interface
func (e *FetchFailedError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns underlying error.
func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

// IsFetchFailed tells that this error is 'fetch failed'.
// Returns always true.
func (*FetchFailedError) IsFetchFailed() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	var e interface {
		IsInvalidRequest() bool
	}
	return errors.As(err, &e) && e.IsInvalidRequest()
}

// IsNotFoundError checks if given error is caused by missing upstream resource.
func IsNotFoundError(err error) bool {
	var e interface {
		IsNotFound() bool
	}
	return errors.As(err, &e) && e.IsNotFound()
}

// IsUpstreamUnavailableError checks if given error is caused by upstream server error.
func IsUpstreamUnavailableError(err error) bool {
	var e interface {
		IsUpstreamUnavailable() bool
	}
	return errors.As(err, &e) && e.IsUpstreamUnavailable()
}

// IsRateLimitedError checks if given error is caused by upstream throttling.
func IsRateLimitedError(err error) bool {
	var e interface {
		IsRateLimited() bool
	}
	return errors.As(err, &e) && e.IsRateLimited()
}

// IsFetchFailedError checks if given error is a generic fetch failure.
func IsFetchFailedError(err error) bool {
	var e interface {
		IsFetchFailed() bool
	}
	return errors.As(err, &e) && e.IsFetchFailed()
}

// AsRateLimitedError extracts RateLimitedError from error chain.
func AsRateLimitedError(err error) (RateLimitedError, bool) {
	var e RateLimitedError
	if errors.As(err, &e) {
		return e, true
	}
	return RateLimitedError{}, false
}
