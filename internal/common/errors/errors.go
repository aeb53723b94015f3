// Package errors provides standardized error handling for the ordering engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrCodeMenuLoadFailed  ErrorCode = "MENU_LOAD_FAILED"
	ErrCodeMenuFileInvalid ErrorCode = "MENU_FILE_INVALID"

	ErrCodeNLURequestFailed ErrorCode = "NLU_REQUEST_FAILED"
	ErrCodeNLUSchemaInvalid ErrorCode = "NLU_SCHEMA_INVALID"
	ErrCodeNLUParseFailed   ErrorCode = "NLU_PARSE_FAILED"

	ErrCodeSessionSaveFailed ErrorCode = "SESSION_SAVE_FAILED"
	ErrCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf returns the error code of a StandardError, or "" for other errors.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMenuLoadFailedError creates a non-retryable menu loading error.
func NewMenuLoadFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMenuLoadFailed,
		Message:   "Failed to load menu catalog",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMenuFileInvalidError creates a non-retryable menu data error.
func NewMenuFileInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMenuFileInvalid,
		Message:   "Menu data file is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNLURequestFailedError creates a retryable NLU transport error.
func NewNLURequestFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNLURequestFailed,
		Message:   "NLU completion request failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNLUSchemaInvalidError creates a retryable error for replies that fail
// schema validation. Retryable because the model can be asked again.
func NewNLUSchemaInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNLUSchemaInvalid,
		Message:   "NLU reply does not match the order schema",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNLUParseFailedError creates a retryable error for undecodable replies.
func NewNLUParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNLUParseFailed,
		Message:   "Failed to decode NLU reply",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionSaveFailedError creates a retryable session persistence error.
func NewSessionSaveFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Failed to save session state",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable missing session error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   sessionID,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
