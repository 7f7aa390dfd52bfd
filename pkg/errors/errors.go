package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Template / config errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateParse    ErrorCode = "TEMPLATE_PARSE"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"

	// Rule errors
	ErrRuleNotFound ErrorCode = "RULE_NOT_FOUND"
	ErrRuleInvalid  ErrorCode = "RULE_INVALID"
	ErrRuleExecute  ErrorCode = "RULE_EXECUTE"

	// Dataset errors
	ErrDatasetLoad    ErrorCode = "DATASET_LOAD"
	ErrColumnNotFound ErrorCode = "COLUMN_NOT_FOUND"
	ErrRowOutOfRange  ErrorCode = "ROW_OUT_OF_RANGE"

	// Command / persistence errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"
	ErrPatchWrite     ErrorCode = "PATCH_WRITE"
)

// TablecheckError represents a structured error with code and details
type TablecheckError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TablecheckError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TablecheckError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TablecheckError) Is(target error) bool {
	var targetErr *TablecheckError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TablecheckError with the given code and message
func New(code ErrorCode, message string) *TablecheckError {
	return &TablecheckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TablecheckError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TablecheckError {
	return &TablecheckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TablecheckError
func Wrap(err error, code ErrorCode, message string) *TablecheckError {
	if err == nil {
		return nil
	}
	return &TablecheckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TablecheckError {
	if err == nil {
		return nil
	}
	return &TablecheckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TablecheckError) WithDetail(key string, value interface{}) *TablecheckError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tcErr *TablecheckError
	if errors.As(err, &tcErr) {
		return tcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TablecheckError
func GetErrorCode(err error) ErrorCode {
	var tcErr *TablecheckError
	if errors.As(err, &tcErr) {
		return tcErr.Code
	}
	return ErrUnknown
}
