// Package apperrors defines the typed errors the pipeline and handlers
// exchange, and their HTTP mapping.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeValidation      Code = "VALIDATION_FAILED"
	CodeProviderTimeout Code = "PROVIDER_TIMEOUT"
	CodeProviderFailed  Code = "PROVIDER_FAILED"
	CodeExtraction      Code = "EXTRACTION_FAILED"
	CodeEmptyResponse   Code = "EMPTY_RESPONSE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodePersistence     Code = "PERSISTENCE_FAILED"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func ProviderTimeout(message string, err error) *Error {
	return &Error{Code: CodeProviderTimeout, Message: message, Err: err}
}

func ProviderFailed(message string, err error) *Error {
	return &Error{Code: CodeProviderFailed, Message: message, Err: err}
}

func Extraction(message string, err error) *Error {
	return &Error{Code: CodeExtraction, Message: message, Err: err}
}

func EmptyResponse(message string) *Error {
	return &Error{Code: CodeEmptyResponse, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func Persistence(message string, err error) *Error {
	return &Error{Code: CodePersistence, Message: message, Err: err}
}

// CodeOf extracts the error code, or empty for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MessageOf extracts the client-facing message, falling back to Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a typed error to its response status. Untyped errors are
// internal failures.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
