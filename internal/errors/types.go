package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeInput ErrorType = iota
	ErrorTypeConfig
	ErrorTypeAPI
	ErrorTypeStorage
	ErrorTypeNotFound
	ErrorTypeAuth
	ErrorTypeConflict
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInput:
		return "input_error"
	case ErrorTypeConfig:
		return "config_error"
	case ErrorTypeAPI:
		return "api_error"
	case ErrorTypeStorage:
		return "database_error"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeAuth:
		return "auth_error"
	case ErrorTypeConflict:
		return "conflict"
	default:
		return "server_error"
	}
}

// HTTPStatus returns the HTTP status code this error category maps to.
func (et ErrorType) HTTPStatus() int {
	switch et {
	case ErrorTypeInput:
		return 400
	case ErrorTypeConfig:
		return 503
	case ErrorTypeAPI:
		return 502
	case ErrorTypeStorage:
		return 503
	case ErrorTypeNotFound:
		return 404
	case ErrorTypeAuth:
		return 401
	case ErrorTypeConflict:
		return 409
	default:
		return 500
	}
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}
