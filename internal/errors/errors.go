// Package errors provides standardized error types for the API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// Code represents an API error code.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeInvalidID        Code = "INVALID_ID"
	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeStrictValidation Code = "STRICT_VALIDATION"
	CodeImportRejected   Code = "IMPORT_REJECTED"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeRateLimited      Code = "RATE_LIMITED"
)

// APIError represents a structured API error.
type APIError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &APIError{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound}
	ErrInvalidID      = &APIError{Code: CodeInvalidID, Message: "Invalid ID format", HTTPStatus: http.StatusBadRequest}
	ErrInternal       = &APIError{Code: CodeInternal, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError}
	ErrInvalidRequest = &APIError{Code: CodeInvalidRequest, Message: "Invalid request", HTTPStatus: http.StatusBadRequest}
	ErrRateLimited    = &APIError{Code: CodeRateLimited, Message: "Rate limit exceeded", HTTPStatus: http.StatusTooManyRequests}
)

// NotFound creates a not found error with a custom message.
func NotFound(resource string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidID creates an invalid ID error with context.
func InvalidID(paramName string) *APIError {
	return &APIError{
		Code:       CodeInvalidID,
		Message:    fmt.Sprintf("Invalid %s: must not be empty", paramName),
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidRequest creates a bad request error with a custom message.
func InvalidRequest(message string) *APIError {
	return &APIError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFailed reports form-level field errors.
func ValidationFailed(fields model.ValidationErrors) *APIError {
	return &APIError{
		Code:       CodeValidationFailed,
		Message:    "Validation failed",
		Details:    []model.FieldError(fields),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// StrictValidation reports the chronological warnings a change would introduce.
func StrictValidation(warnings []model.Warning) *APIError {
	return &APIError{
		Code:       CodeStrictValidation,
		Message:    "Change rejected by strict validation",
		Details:    warnings,
		HTTPStatus: http.StatusConflict,
	}
}

// ImportRejected reports an import file that failed the pre-flight check.
func ImportRejected(reason string) *APIError {
	return &APIError{
		Code:       CodeImportRejected,
		Message:    "Import rejected: " + reason,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates an internal error, optionally logging the real error.
func Internal(message string) *APIError {
	if message == "" {
		message = "Internal server error"
	}
	return &APIError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// FromError maps store errors onto API errors. Unknown errors become ErrInternal.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var fields model.ValidationErrors
	if stderrors.As(err, &fields) {
		return ValidationFailed(fields)
	}

	var strict *store.StrictError
	if stderrors.As(err, &strict) {
		return StrictValidation(strict.Warnings)
	}

	var importErr *store.ImportError
	if stderrors.As(err, &importErr) {
		return ImportRejected(importErr.Reason)
	}

	if stderrors.Is(err, store.ErrNotFound) {
		return &APIError{Code: CodeNotFound, Message: err.Error(), HTTPStatus: http.StatusNotFound}
	}

	return ErrInternal
}
