// Package domainerrors carries coded errors across the service boundary.
//
// Services return *Error values so the transport can map them to responses
// without inspecting messages. Stores return sentinel errors instead (see
// pkg/platform/sentinel) and services translate them into codes.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is a stable machine-readable error identifier.
type Code string

const (
	CodeInvalidArgument    Code = "invalid_argument"
	CodeNotFound           Code = "not_found"
	CodeNotWhitelisted     Code = "not_whitelisted"
	CodeNoMetadataAssigned Code = "no_metadata_assigned"
	CodeAlreadyIssued      Code = "already_issued"
	CodeOutOfRange         Code = "out_of_range"
	CodeCapacityExceeded   Code = "capacity_exceeded"

	CodeBadRequest         Code = "bad_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a domain error with a code and a caller-safe message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost *Error in the chain, or
// CodeInternal if there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is shorthand for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidArgument, CodeBadRequest, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNotWhitelisted, CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeAlreadyIssued:
		return http.StatusConflict
	case CodeOutOfRange:
		return http.StatusRequestedRangeNotSatisfiable
	case CodeNoMetadataAssigned, CodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
