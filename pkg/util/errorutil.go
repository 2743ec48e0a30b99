package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewInvalidSubmission reports an unparsable or incomplete submission body.
// Malformed input and downstream failures share the 500 status on purpose:
// callers of this gateway only ever see {error: message}.
func NewInvalidSubmission(message string, err error) error {
	return &DomainError{
		Code:       "INVALID_SUBMISSION",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewMethodNotAllowed(method string) error {
	return NewDomainError("METHOD_NOT_ALLOWED", fmt.Sprintf("method %s not allowed", method), http.StatusMethodNotAllowed)
}

func NewNotFound() error {
	return NewDomainError("NOT_FOUND", "not found", http.StatusNotFound)
}

// NewUpstreamError wraps a failure from the token service, commerce backend or
// helpdesk API.
func NewUpstreamError(message string, err error) error {
	return &DomainError{
		Code:       "UPSTREAM_FAILURE",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
