// Package errors defines the structured application error type and the
// error taxonomy of the contact submission pipeline.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorType string

const (
	// ValidationError covers parseable-but-invalid payloads; every violated
	// field constraint is reported, not just the first.
	ValidationError ErrorType = "VALIDATION_FAILED"
	// MalformedError means the request body could not be parsed as JSON at
	// all. Kept distinct from ValidationError on purpose.
	MalformedError ErrorType = "MALFORMED_REQUEST"
	// ForbiddenError is an origin/referer allow-list rejection.
	ForbiddenError ErrorType = "ORIGIN_FORBIDDEN"
	// RateLimitError means the client identity exhausted its window quota.
	RateLimitError ErrorType = "RATE_LIMITED"
	// HoneypotError marks automated traffic caught by the hidden form field.
	// The user-facing message is deliberately generic so scripts are not
	// tipped off about what tripped them.
	HoneypotError ErrorType = "REJECTED"
	// ServerError is an unexpected internal fault. Detail is logged
	// server-side and never echoed to the caller.
	ServerError ErrorType = "SERVER_ERROR"
)

// User-facing messages. The frontend renders these verbatim.
const (
	MsgInvalidPayload   = "Invalid request data"
	MsgMalformedRequest = "Malformed request body"
	MsgOriginForbidden  = "Origin not allowed"
	MsgRateLimited      = "Too many requests. Please try again later."
	MsgGenericRejection = "Unable to process your request. Please try again later."
	MsgServerError      = "Something went wrong on our end. Please try again later."
)

// AppError represents a structured application error.
type AppError struct {
	Type       ErrorType
	Message    string
	Errors     []string
	HTTPStatus int
	RetryAfter time.Duration
	Raw        error
}

func (e *AppError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %s", e.Type, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status this error maps to.
func (e *AppError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// ErrorList returns the ordered user-facing error messages for the response
// body, falling back to the single message when no list was collected.
func (e *AppError) ErrorList() []string {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	return []string{e.Message}
}

// ValidationFailed wraps an ordered list of field validation messages.
func ValidationFailed(errs []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    MsgInvalidPayload,
		Errors:     errs,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedRequest reports a body that could not be parsed as JSON.
func MalformedRequest(err error) *AppError {
	return &AppError{
		Type:       MalformedError,
		Message:    MsgMalformedRequest,
		HTTPStatus: http.StatusBadRequest,
		Raw:        err,
	}
}

// OriginNotAllowed reports an origin/referer allow-list rejection.
func OriginNotAllowed() *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    MsgOriginForbidden,
		HTTPStatus: http.StatusForbidden,
	}
}

// RateLimitExceeded reports an exhausted window quota together with the
// retry delay to advertise in the Retry-After header.
func RateLimitExceeded(retryAfter time.Duration) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    MsgRateLimited,
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

// SilentRejection reports honeypot-caught traffic with a message that never
// names the honeypot field.
func SilentRejection() *AppError {
	return &AppError{
		Type:       HoneypotError,
		Message:    MsgGenericRejection,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InternalServerError wraps an unexpected fault. The raw error is kept for
// server-side logging only.
func InternalServerError(err error) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    MsgServerError,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}
