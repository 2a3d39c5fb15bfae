package errors

import (
	"errors"
	"fmt"
)

// NewInputError creates a new input validation error. The message is shown
// to the user verbatim.
func NewInputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Code:    "INPUT_INVALID",
		Context: make(map[string]interface{}),
	}
}

// NewConfigError creates a new configuration error (missing or invalid
// credential). The message should read as a setup instruction.
func NewConfigError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Code:    "CONFIG_INVALID",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewAPIError creates a new error for model-service failures (transport,
// rate limits, loop cap).
func NewAPIError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAPI,
		Message: message,
		Cause:   cause,
		Code:    "API_FAILED",
		Context: make(map[string]interface{}),
	}
}

// NewStorageError creates a new storage error
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Message: message,
		Code:    "AUTH_REQUIRED",
		Context: make(map[string]interface{}),
	}
}

// NewConflictError creates a new uniqueness-conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    "CONFLICT",
		Context: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInput, ErrorTypeConfig, ErrorTypeAPI, ErrorTypeNotFound, ErrorTypeAuth, ErrorTypeConflict:
			return appErr.Message
		case ErrorTypeStorage:
			return "A database error occurred. Please try again."
		default:
			return "Something went wrong. Please try again."
		}
	}
	return "Something went wrong. Please try again."
}

// GetErrorLabel returns the JSON error_type label for the error. Unknown
// errors collapse to "server_error" so internal detail never leaks.
func GetErrorLabel(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.String()
	}
	return "server_error"
}

// GetHTTPStatus returns the HTTP status code for the error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return 500
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInput, ErrorTypeNotFound, ErrorTypeAuth, ErrorTypeConflict:
			return false // These are user errors, not system errors
		case ErrorTypeConfig, ErrorTypeAPI, ErrorTypeStorage:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
