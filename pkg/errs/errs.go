// Package errs defines the failure taxonomy shared by every pipeline stage.
//
// Three kinds of failures exist: validation failures (caller error, mapped to
// HTTP 400), service failures (unavailable dependency, mapped to HTTP 503
// with a retry-after hint), and everything else, which is surfaced as a
// generic internal error with no detail leaked to the caller.
package errs

import (
	"errors"
	"fmt"
	"time"
)

// Machine codes carried by taxonomy errors. Codes are part of the wire
// contract and must stay stable.
const (
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeQueryTooShort    = "QUERY_TOO_SHORT"
	CodeQueryTooLong     = "QUERY_TOO_LONG"
	CodeInvalidLimit     = "INVALID_LIMIT"
	CodeInvalidBody      = "INVALID_BODY"
	CodeBodyTooLarge     = "BODY_TOO_LARGE"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"

	CodeSearchError = "SEARCH_ERROR"
	CodeFetchFailed = "FETCH_FAILED"
	CodeCacheError  = "CACHE_ERROR"
	CodeExpandError = "EXPAND_ERROR"

	CodeInternal = "INTERNAL_ERROR"
)

// DefaultRetryAfter is the retry delay suggested to callers when a dependency
// is exhausted. Fixed by contract.
const DefaultRetryAfter = 60 * time.Second

// ValidationError is a caller error. It is never retried and always maps to
// an HTTP 400 response carrying the machine code.
type ValidationError struct {
	Code    string
	Message string
}

// NewValidation creates a ValidationError with the given machine code and
// caller-safe message.
func NewValidation(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ServiceError indicates an unavailable dependency. It maps to an HTTP 503
// response and carries a caller-suggested retry delay.
type ServiceError struct {
	Code       string
	Message    string
	RetryAfter time.Duration
	Err        error
}

// NewService creates a ServiceError with the default retry-after delay.
func NewService(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message, RetryAfter: DefaultRetryAfter}
}

// NewServiceWrap creates a ServiceError wrapping the underlying cause. The
// cause is written to the local log only and never reaches the wire response.
func NewServiceWrap(code, message string, cause error) *ServiceError {
	return &ServiceError{Code: code, Message: message, RetryAfter: DefaultRetryAfter, Err: cause}
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// AsValidation reports whether err is (or wraps) a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)

	return v, ok
}

// AsService reports whether err is (or wraps) a ServiceError.
func AsService(err error) (*ServiceError, bool) {
	var s *ServiceError
	ok := errors.As(err, &s)

	return s, ok
}
